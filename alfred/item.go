package alfred

import "strings"

// Icon selects an item's icon. At most one source is used, in the order
// Path, FileIcon, FileType.
type Icon struct {
	// Path is an image file shown as is.
	Path string `yaml:"path"`
	// FileIcon is a file whose Finder icon is shown.
	FileIcon string `yaml:"fileicon"`
	// FileType is a uniform type identifier, e.g. "public.folder".
	FileType string `yaml:"filetype"`
}

// IconPath returns an icon showing the image at path.
func IconPath(path string) *Icon { return &Icon{Path: path} }

// IconForFile returns an icon showing the Finder icon of path.
func IconForFile(path string) *Icon { return &Icon{FileIcon: path} }

// IconForType returns an icon showing the icon of a file type.
func IconForType(uti string) *Icon { return &Icon{FileType: uti} }

// Item is one script filter result. The zero value renders as a valid
// item with no content.
type Item struct {
	Title        string
	Subtitle     string
	Icon         *Icon
	UID          string
	Arg          string
	Autocomplete string
	Type         string
	Invalid      bool
}

// Valid reports whether Alfred may action the item.
func (it Item) Valid() bool {
	return !it.Invalid
}

// multiline reports whether the arg must be carried as an element.
func (it Item) multiline() bool {
	return strings.Contains(it.Arg, "\n")
}

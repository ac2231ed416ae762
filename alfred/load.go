package alfred

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/wippyai/cocoa-bridge/errors"
)

type yamlItem struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	Icon         *Icon  `yaml:"icon"`
	UID          string `yaml:"uid"`
	Arg          string `yaml:"arg"`
	Autocomplete string `yaml:"autocomplete"`
	Type         string `yaml:"type"`
	Valid        *bool  `yaml:"valid"`
}

type yamlDoc struct {
	Items []yamlItem `yaml:"items"`
}

// UnmarshalYAML accepts either a mapping or a bare string naming an image
// file.
func (ic *Icon) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if path, ok := raw.(string); ok {
		*ic = *IconPath(path)
		return nil
	}
	type plain Icon
	return unmarshal((*plain)(ic))
}

// LoadItems decodes items from YAML of the form
//
//	items:
//	  - title: Safari
//	    arg: Safari
//	    icon: {fileicon: /Applications/Safari.app}
//
// valid defaults to true.
func LoadItems(r io.Reader) ([]Item, error) {
	var doc yamlDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "decode items YAML")
	}

	items := make([]Item, 0, len(doc.Items))
	for _, y := range doc.Items {
		items = append(items, Item{
			Title:        y.Title,
			Subtitle:     y.Subtitle,
			Icon:         y.Icon,
			UID:          y.UID,
			Arg:          y.Arg,
			Autocomplete: y.Autocomplete,
			Type:         y.Type,
			Invalid:      y.Valid != nil && !*y.Valid,
		})
	}
	return items, nil
}

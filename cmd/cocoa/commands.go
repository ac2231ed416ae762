package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wippyai/cocoa-bridge/alfred"
)

func newLaunchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "launch <application>",
		Short: "Launch an application by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			return s.Launch(args[0])
		},
	}
}

func newFileURLCmd(a *app) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "fileurl <path>",
		Short: "Print the file URL for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			u, err := s.FileURL(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			if !open {
				return nil
			}
			ok, err := s.Open(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("workspace refused to open %s", u)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "also open the URL with the default application")
	return cmd
}

type listFlags struct {
	where string
	xml   bool
	text  bool
}

func (f *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.where, "where", "", "filter expression, e.g. 'title startsWith \"GO\"'")
	cmd.Flags().BoolVar(&f.xml, "xml", false, "always print script filter XML")
	cmd.Flags().BoolVar(&f.text, "text", false, "always print a plain listing")
	cmd.MarkFlagsMutuallyExclusive("xml", "text")
}

func (f *listFlags) mode() outputMode {
	switch {
	case f.xml:
		return outputXML
	case f.text:
		return outputText
	}
	return outputAuto
}

func newEnvCmd(a *app) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "env [query]",
		Short: "List the process environment as script filter items",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.envItems()
			if err != nil {
				return err
			}
			var query string
			if len(args) > 0 {
				query = args[0]
			}
			items, err := selectItems(all, query, flags.where)
			if err != nil {
				return err
			}
			return a.writeItems(cmd.OutOrStdout(), flags.mode(), items)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		flags listFlags
		file  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render script filter XML from a YAML item file",
		Long: `render reads items from YAML and prints them as script filter XML.

  items:
    - title: Desktop
      arg: ~/Desktop
      icon: {fileicon: ~/Desktop}

Use -f - to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := readItems(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if items, err = selectItems(items, "", flags.where); err != nil {
				return err
			}
			if !flags.text {
				flags.xml = true
			}
			return a.writeItems(cmd.OutOrStdout(), flags.mode(), items)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "YAML item file")
	flags.bind(cmd)
	return cmd
}

func readItems(stdin io.Reader, file string) ([]alfred.Item, error) {
	if file == "" || file == "-" {
		return alfred.LoadItems(stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return alfred.LoadItems(f)
}

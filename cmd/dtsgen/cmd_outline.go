package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/config"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/dts"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/format"
)

func newOutlineCmd() *cobra.Command {
	var (
		plain  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "outline [file...]",
		Short: "List the declarations extracted from annotated sources",
		Long: `List the globals, sections and members extracted from annotated sources.

Inputs are resolved the same way as for generate. Use --plain for tab
separated lines or --json for a machine readable dump.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain && asJSON {
				return fmt.Errorf("--plain and --json are mutually exclusive")
			}

			inputs := args
			if len(inputs) == 0 {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				inputs = cfg.InputPaths()
			}

			source, err := readSources(inputs)
			if err != nil {
				return err
			}
			table := dts.Extract(source)

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := format.NewJSONEncoder(out)
				if err := enc.Encode(table); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Fprintln(out)
				return nil
			case plain:
				enc := format.NewLineEncoder(out)
				if err := enc.Encode(table); err != nil {
					return fmt.Errorf("encode line: %w", err)
				}
				return nil
			}
			_, err = io.WriteString(out, renderOutline(table))
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print tab separated lines without styling")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the symbol table as JSON")

	return cmd
}

func renderOutline(table *api.Table) string {
	var sb strings.Builder

	if globals := table.Globals.All(); len(globals) > 0 {
		sb.WriteString(sectionStyle.Render("globals"))
		sb.WriteString("\n")
		for _, m := range globals {
			writeOutlineMember(&sb, m)
		}
	}

	for _, s := range table.Sections {
		if s.Entry == nil {
			continue
		}
		sb.WriteString(kindStyle.Render(format.SectionKind(s)))
		sb.WriteString(" ")
		sb.WriteString(sectionStyle.Render(s.TypeName))
		sb.WriteString(dimStyle.Render(" :" + strconv.Itoa(s.Line)))
		sb.WriteString("\n")
		for _, m := range s.Members() {
			writeOutlineMember(&sb, m)
		}
	}

	if len(table.Opaque) > 0 {
		sb.WriteString(sectionStyle.Render("unrecognized"))
		sb.WriteString("\n")
		for _, m := range table.Opaque {
			sb.WriteString("  ")
			sb.WriteString(dimStyle.Render(m.Name + " :" + strconv.Itoa(m.Line)))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeOutlineMember(sb *strings.Builder, m *api.Member) {
	sb.WriteString("  ")
	sb.WriteString(kindStyle.Render(m.Category))
	sb.WriteString(" ")
	sb.WriteString(nameStyle.Render(m.Name))
	if t := format.MemberType(m); t != "" {
		sb.WriteString(" ")
		sb.WriteString(typeStyle.Render(t))
	}
	sb.WriteString(dimStyle.Render(" :" + strconv.Itoa(m.Line)))
	sb.WriteString("\n")
}

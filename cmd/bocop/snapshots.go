package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bocop/internal/config"
	"github.com/san-kum/bocop/internal/plot"
	"github.com/san-kum/bocop/internal/storage"
)

func openStore(cmd *cobra.Command) (*storage.Store, *settings, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	return storage.New(s.cfg.DataDir), s, nil
}

func importSolution(cmd *cobra.Command, args []string) error {
	st, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	if err := st.Init(); err != nil {
		return err
	}
	sol, err := readSolution(args[0])
	if err != nil {
		return err
	}
	id, err := st.Save(sol)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot saved: %s\n", id)
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	snaps, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(snaps) == 0 {
		fmt.Fprintln(out, "no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSTATES\tCONTROLS\tROWS")
	for _, snap := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			snap.ID,
			snap.Source,
			snap.Timestamp.Format("2006-01-02 15:04:05"),
			len(snap.States),
			len(snap.Controls),
			snap.Rows,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	st, s, err := openStore(cmd)
	if err != nil {
		return err
	}
	id, err := st.Resolve(args[0])
	if err != nil {
		return err
	}
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	frame, err := st.LoadTable(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch f, _ := cmd.Flags().GetString("format"); f {
	case "csv":
		return frame.WriteCSV(out)
	case "json":
		return frame.WriteJSON(out)
	case "plot":
	default:
		return fmt.Errorf("unknown format: %s (available: plot, csv, json)", f)
	}

	fmt.Fprintf(out, "snapshot: %s\n", meta.ID)
	fmt.Fprintf(out, "source: %s\n", meta.Source)
	fmt.Fprintf(out, "imported: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "rows: %d\n\n", meta.Rows)

	for _, name := range frame.Columns {
		series, _ := frame.Series(name)
		if series.Len() == 0 {
			continue
		}
		style := s.style
		style.Title = name
		fmt.Fprintln(out, plot.ASCII(series, style))
		fmt.Fprintln(out)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written: %s\n", args[0])
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(s.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list plot style presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "available presets:")
			for _, p := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", p)
			}
		},
	}

	configCmd.AddCommand(initCmd, showCmd, presetsCmd)
	return configCmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.Dump()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.cfg.Source == "" {
				fmt.Fprint(out, MsgConfigSourceNone)
			} else {
				fmt.Fprintf(out, MsgConfigSource, a.cfg.Source)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

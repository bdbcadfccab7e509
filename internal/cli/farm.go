package cli

import (
	"fmt"

	"github.com/arthur-debert/jackman/pkg/alias"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ensureWorkers bounds concurrent alias creation for farm alias --create
const ensureWorkers = 8

func (a *App) newFarmCmd() *cobra.Command {
	farmCmd := &cobra.Command{
		Use:   "farm",
		Short: MsgFarmShort,
	}

	farmCmd.AddCommand(a.newFarmListCmd())
	farmCmd.AddCommand(a.newFarmAliasCmd())
	farmCmd.AddCommand(a.newFarmResolveCmd())
	return farmCmd
}

// farm builds the alias farm described by the loaded configuration
func (a *App) farm() (*alias.Farm, error) {
	namer, err := alias.NewNamer(a.cfg.DigestSize)
	if err != nil {
		return nil, err
	}
	return alias.NewFarm(a.FS, alias.FarmOptions{
		WorkingDir: a.WorkingDir,
		Prefix:     a.cfg.Prefix,
		Namer:      namer,
		Verify:     a.cfg.VerifyAliases,
	}), nil
}

func (a *App) newFarmListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgFarmListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			farm, err := a.farm()
			if err != nil {
				return err
			}
			entries, err := farm.Entries()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "yaml":
				data, err := yaml.Marshal(entries)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case "table":
				if len(entries) == 0 {
					fmt.Fprintf(out, MsgNoAliases, farm.Root())
					return nil
				}
				data := pterm.TableData{{"ALIAS", "TARGET"}}
				for _, e := range entries {
					data = append(data, []string{e.Path, e.Target})
				}
				rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, rendered)
				return nil
			default:
				return fmt.Errorf(MsgErrOutputFormat, output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", MsgFlagOutput)
	return cmd
}

func (a *App) newFarmAliasCmd() *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "alias <dir>...",
		Short: MsgFarmAliasShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			farm, err := a.farm()
			if err != nil {
				return err
			}
			paths := make([]string, len(args))
			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(ensureWorkers)
			for i, dir := range args {
				if !create {
					paths[i] = farm.AliasPath(dir)
					continue
				}
				g.Go(func() error {
					var err error
					paths[i], err = farm.Ensure(dir)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, MsgFlagCreate)
	return cmd
}

func (a *App) newFarmResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <alias>...",
		Short: MsgFarmResolveShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			farm, err := a.farm()
			if err != nil {
				return err
			}
			for _, name := range args {
				target, err := farm.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), target)
			}
			return nil
		},
	}
}

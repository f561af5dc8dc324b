package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/morgadow/gopcanbasic/config"
	"github.com/morgadow/gopcanbasic/pcan"
	"github.com/morgadow/gopcanbasic/pcaninfo"
	"github.com/omzlo/clog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	heading = color.New(color.FgCyan, color.Bold).SprintfFunc()
	green   = color.New(color.FgGreen).SprintfFunc()
	yellow  = color.New(color.FgYellow).SprintfFunc()
	red     = color.New(color.FgRed).SprintfFunc()
)

var (
	configFile string
	debug      bool
	verbose    bool
	plain      bool
)

var rootCmd = &cobra.Command{
	Use:   "pcaninfo [device-filter...]",
	Short: "List the PCAN devices and their PCAN-Basic handles",
	Long: `pcaninfo prints the version of the PCAN driver and a report of every device it
handles. Arguments restrict the report to the devices whose name or device file contains
one of them.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(configFile); err != nil {
			if configFile != "" || !errors.Is(err, config.ErrNotFound) {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
		}
		level := config.Settings.Level()
		switch {
		case verbose:
			level = clog.DEBUGX
		case debug:
			level = clog.DEBUG
		}
		clog.SetLogLevel(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return listDevices(cmd.Context(), cmd, args)
	},
}

// Execute runs the command line with ctx cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	log.SetFlags(0)
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file (default ~/.pcanbasic.conf or /etc/pcanbasic.conf)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "debug mode")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose debug mode")
	rootCmd.Flags().BoolVarP(&plain, "plain", "p", false, "print the driver report only, without colours nor handles")
}

func matchDevice(info *pcaninfo.Info, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if strings.Contains(info.Name, f) || strings.Contains(info.Path, f) {
			return true
		}
	}
	return false
}

func listDevices(ctx context.Context, cmd *cobra.Command, filters []string) error {
	sysfs := pcaninfo.Sysfs{Root: config.Settings.SysfsRoot}
	out := cmd.OutOrStdout()

	version := sysfs.DriverVersion()
	var infos []pcaninfo.Info
	if version != "" {
		var err error
		if infos, err = sysfs.List(); err != nil {
			return err
		}
	}

	selected := make([]pcaninfo.Info, 0, len(infos))
	for i := range infos {
		if matchDevice(&infos[i], filters) {
			selected = append(selected, infos[i])
		}
	}

	if plain {
		pcaninfo.Print(out, version, selected)
		return nil
	}

	if version == "" {
		fmt.Fprintln(out, red("PCAN driver not found"))
		return nil
	}
	fmt.Fprintf(out, "%s %s\n\n", heading("PCAN driver version:"), version)
	fmt.Fprintf(out, "%s\n", heading("Found %d PCAN devices", len(selected)))

	// devices are re-read concurrently, reports are printed in scan order
	reports := make([]bytes.Buffer, len(selected))
	g, _ := errgroup.WithContext(ctx)
	for i := range selected {
		i := i
		g.Go(func() error {
			info := &selected[i]
			if err := sysfs.Update(info); err != nil {
				return fmt.Errorf("%s: %w", info.Name, err)
			}
			pcaninfo.Output(&reports[i], info)
			handle := pcan.DeviceHandle(infos, info.Path)
			name := fmt.Sprintf("%q", pcan.HandleName(handle))
			if handle == pcan.PCAN_NONEBUS {
				name = yellow(name)
			} else {
				name = green(name)
			}
			fmt.Fprintf(&reports[i], "  \t- TPCANHandle: %s (0x%03x)\n", name, uint16(handle))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range reports {
		out.Write(reports[i].Bytes())
		fmt.Fprintln(out)
	}
	return nil
}

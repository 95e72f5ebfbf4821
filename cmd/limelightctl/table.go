package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Ratio1/limelight_sdk_go/pkg/bootstrap"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one numeric entry (unset entries print 0)",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			_, err := fmt.Fprintln(a.out, formatNumber(rt.Limelight.GetNumber(args[0])))
			return err
		}),
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write one numeric entry",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return userErr("value %q is not a number", args[1])
			}
			rt.Limelight.SetNumber(args[0], value)
			return nil
		}),
	}
}

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the keys present in the table",
		Args:  usageArgs(cobra.NoArgs),
		RunE: a.withRuntime(func(cmd *cobra.Command, _ []string, rt *bootstrap.Runtime) error {
			keys, err := rt.Handle.Keys(cmd.Context())
			if err != nil {
				return fmt.Errorf("list keys: %w", err)
			}
			for _, key := range keys {
				fmt.Fprintln(a.out, key)
			}
			return nil
		}),
	}
}

func newTargetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "Print every targeting entry as JSON",
		Args:  usageArgs(cobra.NoArgs),
		RunE: a.withRuntime(func(_ *cobra.Command, _ []string, rt *bootstrap.Runtime) error {
			return a.printJSON(rt.Limelight.Snapshot())
		}),
	}
}

func newRawCmd(a *app) *cobra.Command {
	raw := &cobra.Command{
		Use:   "raw",
		Short: "Read raw contour and crosshair entries",
	}

	contour := &cobra.Command{
		Use:   "contour <index>",
		Short: "Print raw contour 0-2 (x, y, area, skew) as JSON",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			x, err := rt.Limelight.RawScreenspaceX(i)
			if err != nil {
				return err
			}
			// The index is valid from here on.
			y, _ := rt.Limelight.RawScreenspaceY(i)
			area, _ := rt.Limelight.RawArea(i)
			skew, _ := rt.Limelight.RawSkew(i)
			return a.printJSON(map[string]any{
				"index": i,
				"x":     x,
				"y":     y,
				"area":  area,
				"skew":  skew,
			})
		}),
	}

	crosshair := &cobra.Command{
		Use:   "crosshair <index>",
		Short: "Print crosshair 0-1 (x, y) as JSON",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			x, err := rt.Limelight.RawCrosshairX(i)
			if err != nil {
				return err
			}
			y, _ := rt.Limelight.RawCrosshairY(i)
			return a.printJSON(map[string]any{"index": i, "x": x, "y": y})
		}),
	}

	raw.AddCommand(contour, crosshair)
	return raw
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, userErr("index %q is not an integer", s)
	}
	return i, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

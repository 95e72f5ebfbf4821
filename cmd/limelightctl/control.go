package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ratio1/limelight_sdk_go/pkg/bootstrap"
	"github.com/Ratio1/limelight_sdk_go/pkg/limelight"
)

func newLEDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "led <pipeline|off|blink|on>",
		Short:     "Set the LED mode",
		Args:      usageArgs(cobra.ExactArgs(1)),
		ValidArgs: []string{"pipeline", "off", "blink", "on"},
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			mode, err := parseMode(args[0], limelight.ParseLEDMode, func(n int) bool { return limelight.LEDMode(n).Valid() })
			if err != nil {
				return err
			}
			rt.Limelight.SetLEDMode(mode)
			return nil
		}),
	}
}

func newCameraCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "camera <vision|driver>",
		Short:     "Set the camera mode",
		Args:      usageArgs(cobra.ExactArgs(1)),
		ValidArgs: []string{"vision", "driver"},
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			mode, err := parseMode(args[0], limelight.ParseCameraMode, func(n int) bool { return limelight.CameraMode(n).Valid() })
			if err != nil {
				return err
			}
			rt.Limelight.SetCameraMode(mode)
			return nil
		}),
	}
}

func newStreamCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "stream <standard|pip-main|pip-secondary>",
		Short:     "Set the stream layout",
		Args:      usageArgs(cobra.ExactArgs(1)),
		ValidArgs: []string{"standard", "pip-main", "pip-secondary"},
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			mode, err := parseMode(args[0], limelight.ParseStreamMode, func(n int) bool { return limelight.StreamMode(n).Valid() })
			if err != nil {
				return err
			}
			rt.Limelight.SetStreamMode(mode)
			return nil
		}),
	}
}

func newPipelineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline <0-9>",
		Short: "Select the active vision pipeline",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			n, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return rt.Limelight.SetPipeline(n)
		}),
	}
}

func newSnapshotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "snapshot <on|off>",
		Short:     "Start or stop taking snapshots",
		Args:      usageArgs(cobra.ExactArgs(1)),
		ValidArgs: []string{"on", "off"},
		RunE: a.withRuntime(func(_ *cobra.Command, args []string, rt *bootstrap.Runtime) error {
			switch strings.ToLower(args[0]) {
			case "on", "true", "1":
				rt.Limelight.EnableSnapshots(true)
			case "off", "false", "0":
				rt.Limelight.EnableSnapshots(false)
			default:
				return userErr("snapshot takes on or off, got %q", args[0])
			}
			return nil
		}),
	}
}

// parseMode accepts a mode name or its numeric value.
func parseMode[M ~int](s string, parse func(string) (M, error), valid func(int) bool) (M, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if !valid(n) {
			return 0, userErr("mode %d is not defined", n)
		}
		return M(n), nil
	}
	m, err := parse(s)
	if err != nil {
		return 0, &usageError{err: err}
	}
	return m, nil
}

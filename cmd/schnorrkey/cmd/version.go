package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	dbg "runtime/debug"

	"github.com/spf13/cobra"
)

// Populated at build time via -ldflags "-X ...cmd.Version=... -X ...cmd.Commit=...".
var (
	Version = "v0.0.0-in-progress"
	Commit  = "unknown"
)

const btcecModule = "github.com/btcsuite/btcd/btcec/v2"

// Info describes the binary and the curve engine it was linked against.
type Info struct {
	Version      string `json:"version"`
	GitCommit    string `json:"commit"`
	GoVersion    string `json:"go_version"`
	BtcecVersion string `json:"btcec_version"`
}

// NewInfo collects version information from build metadata.
func NewInfo() Info {
	info := Info{
		Version:   Version,
		GitCommit: Commit,
		GoVersion: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := dbg.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			if dep.Path == btcecModule {
				info.BtcecVersion = dep.Version
			}
		}
	}
	return info
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Version information for schnorrkey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bz, err := json.MarshalIndent(NewInfo(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return nil
		},
	}
}

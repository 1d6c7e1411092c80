/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/kikimo/scc-gen/pkg/dump"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type CheckOpts struct {
	input string
	nodes int
	// negative skips the edge count check
	edges int
}

var checkOpts CheckOpts

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify a transaction script",
	Long: `check parses a transaction script and verifies that it describes a
simple graph: every endpoint is a node id, no edge is a self loop and no
edge appears twice. The edge count is verified too when --edges is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOpts.nodes = viper.GetInt("nodes")
		checkOpts.edges = -1
		if viper.IsSet("edges") {
			checkOpts.edges = viper.GetInt("edges")
		}

		if err := runCheck(checkOpts); err != nil {
			return fmt.Errorf("check failed: %w", err)
		}

		return nil
	},
}

func runCheck(opts CheckOpts) error {
	s, err := dump.ReadFile(opts.input)
	if err != nil {
		return err
	}

	if err := s.Verify(opts.nodes, opts.edges); err != nil {
		return err
	}

	glog.Infof("%s ok, %d edges over %d nodes", opts.input, len(s.Edges), opts.nodes)
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkOpts.input, "input", "i", dump.DefaultFile, "script to check")
}

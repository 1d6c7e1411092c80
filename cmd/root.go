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
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/kikimo/scc-gen/pkg/dump"
	"github.com/kikimo/scc-gen/pkg/graph"
	sccrand "github.com/kikimo/scc-gen/pkg/rand"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultNodes = 1000
	defaultEdges = 10000
)

var cfgFile string

// newSeed draws the seed used when none is configured.
var newSeed = sccrand.RandomSeed

type GenOpts struct {
	nodes  int
	edges  int
	seed   int64
	output string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scc-gen",
	Short: "Generate a random graph as a ddlog transaction script",
	Long: `scc-gen draws a G(n,m) random graph and writes its edge list as a
transaction script for the scc program:

  start;
  insert Edge(0, 17),
  ...
  commit dump_changes;
  timestamp;

Pass --seed to make the output reproducible.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// glog flags are already set through pflag, only mark them parsed
		flag.CommandLine.Parse([]string{})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := runGenerate(loadGenOpts()); err != nil {
			return fmt.Errorf("error generating graph: %w", err)
		}

		return nil
	},
}

func loadGenOpts() GenOpts {
	opts := GenOpts{
		nodes:  viper.GetInt("nodes"),
		edges:  viper.GetInt("edges"),
		output: viper.GetString("output"),
	}

	if viper.IsSet("seed") {
		opts.seed = viper.GetInt64("seed")
	} else {
		opts.seed = newSeed()
	}

	return opts
}

func runGenerate(opts GenOpts) (int, error) {
	glog.Infof("generating graph, nodes: %d, edges: %d, seed: %d", opts.nodes, opts.edges, opts.seed)
	g, err := graph.GNM(opts.nodes, opts.edges, sccrand.NewSource(opts.seed))
	if err != nil {
		return 0, err
	}

	n, err := dump.WriteFile(opts.output, g)
	if err != nil {
		return n, err
	}

	glog.Infof("done writing %d edges to %s", n, opts.output)
	return n, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		glog.Errorf("%+v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scc-gen.yaml)")
	rootCmd.PersistentFlags().IntP("nodes", "n", defaultNodes, "number of nodes")
	rootCmd.PersistentFlags().IntP("edges", "m", defaultEdges, "number of edges")
	rootCmd.Flags().Int64("seed", 0, "random seed (default is a fresh seed per run)")
	rootCmd.Flags().StringP("output", "o", dump.DefaultFile, "output file")

	cobra.CheckErr(bindFlags())

	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
}

func bindFlags() error {
	binds := []struct {
		key  string
		flag *pflag.Flag
	}{
		{"nodes", rootCmd.PersistentFlags().Lookup("nodes")},
		{"edges", rootCmd.PersistentFlags().Lookup("edges")},
		{"seed", rootCmd.Flags().Lookup("seed")},
		{"output", rootCmd.Flags().Lookup("output")},
	}

	for _, b := range binds {
		if err := viper.BindPFlag(b.key, b.flag); err != nil {
			return err
		}
	}

	return nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".scc-gen" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".scc-gen")
	}

	viper.SetEnvPrefix("scc_gen")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

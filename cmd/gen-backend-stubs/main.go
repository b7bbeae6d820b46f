// Package main provides the CLI entrypoint for gen-backend-stubs.
//
// gen-backend-stubs reads the operator registry and an out-of-tree backend's
// declaration file and writes the C++ glue the backend compiles against:
//   - aten_xla_type.h, the class declaring one static kernel per operator
//   - aten_xla_type_default.h/.cpp, CPU fallbacks and dispatcher registrations
package main

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"backend-stubs-generator/internal/stubs"
)

func newRootCmd() *cobra.Command {
	var opts stubs.Options

	cmd := &cobra.Command{
		Use:           "gen-backend-stubs",
		Short:         "Generate backend stub files",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stubs.RunWithFileManager(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SourceYAML, "source_yaml", "s", "",
		"path to source yaml file containing operator external definitions")
	cmd.Flags().StringVarP(&opts.OutputDir, "output_dir", "o", "", "output directory")
	cmd.Flags().StringVarP(&opts.NativeYAML, "native_yaml", "n", "",
		"path to native_functions.yaml (default <pytorch_root>/"+stubs.DefaultNativeYAML+")")
	cmd.Flags().StringVar(&opts.PytorchRoot, "pytorch_root", ".", "PyTorch checkout the registry is read from")
	cmd.Flags().StringVar(&opts.TemplateDir, "template_dir", "", "directory overriding the built-in templates")
	cmd.Flags().BoolVar(&opts.DryRun, "dry_run", false, "render everything but write nothing")

	for _, name := range []string{"source_yaml", "output_dir"} {
		_ = cmd.MarkFlagRequired(name)
	}

	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.Flags().AddGoFlagSet(klogFlags)

	return cmd
}

func main() {
	defer klog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		klog.Errorf("%+v", err)
		klog.Flush()
		os.Exit(1)
	}
}

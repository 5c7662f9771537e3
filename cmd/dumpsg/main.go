package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime"

	"github.com/mdouchement/dumpsg/internal/config"
	"github.com/mdouchement/dumpsg/internal/database"
	"github.com/mdouchement/dumpsg/internal/dump"
	"github.com/mdouchement/dumpsg/internal/dumper"
	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/storage"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	opts = config.Default()
)

func main() {
	if err := newCommand().Execute(); err != nil {
		log.Printf("%+v", err)
		os.Exit(exiterror.StatusCode(err))
	}
}

func newCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "dumpsg [flags] FILE [FILE...]",
		Short: "Process xAOD files and dump information about their containers",
		Long: `Process xAOD files and dump information about their containers.

All the given files are chained together and read as a single dataset.`,
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args: func(c *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(c, args); err != nil {
				return exiterror.New(exiterror.CodeUsage, err.Error())
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          dumpRun,
	}
	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Version for dumpsg",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(c.Version)
		},
	})

	flags := c.Flags()
	flags.StringVar(&opts.Tree, "tree", opts.Tree, "Specify the tree that contains the StoreGate structure.")
	flags.StringVarP(&opts.Output, "output", "o", opts.Output, "Output file to store dumped information.")
	flags.StringVarP(&opts.OutputDirectory, "output_directory", "d", opts.OutputDirectory, "Output directory to store the report plots.")
	flags.StringVarP(&opts.Type, "type", "t", opts.Type, "Unix filename pattern for the xAOD container type. For example, --type=\"Jet*\" will match `xAOD::JetContainer` while --type=\"*Jet*\" will match `xAOD::TauJetContainer`.")
	flags.StringVarP(&opts.Container, "container", "c", opts.Container, "Unix filename pattern for the xAOD container name. For example, --container=\"AntiKt10LCTopo*\" will match `AntiKt10LCTopoJets`.")
	flags.StringVarP(&opts.Format, "format", "f", opts.Format, fmt.Sprintf("Specify the output format %v.", dump.Formats()))
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Enable verbose output, repeat it to increase the verbosity.")
	flags.BoolVar(&opts.DebugROOT, "debug-root", false, "Log every element read from the event store tree.")
	flags.BoolVarP(&opts.Batch, "batch", "b", false, "Enable batch mode, no colors nor terminal decorations.")
	flags.BoolVar(&opts.HasAux, "has_aux", false, "Enable to only include containers which have an auxiliary container.")
	flags.BoolVar(&opts.Properties, "prop", false, "Enable to print properties of container.")
	flags.BoolVar(&opts.Attributes, "attr", false, "Enable to print attributes of container.")
	flags.BoolVar(&opts.Report, "report", false, "Enable to draw the distribution of every variable of the selected containers.")
	flags.BoolVar(&opts.MergeReport, "merge-report", false, "Enable to draw the report as a single PDF document.")
	flags.BoolVar(&opts.Size, "size", false, "Enable to compute the in-memory size of the selected containers.")
	flags.StringVar(&opts.NoEntries, "noEntries", opts.NoEntries, "Background color of the plots without entries.")
	flags.StringVar(&opts.NoRMS, "noRMS", opts.NoRMS, "Background color of the plots with a null RMS.")
	flags.StringVar(&opts.NoMean, "noMean", opts.NoMean, "Background color of the plots with a null mean.")
	flags.StringVar(&opts.FilterProps, "filterProps", opts.FilterProps, "(INACTIVE) Unix filename pattern for xAOD property names. Only used if --prop enabled.")
	flags.StringVar(&opts.FilterAttrs, "filterAttrs", opts.FilterAttrs, "(INACTIVE) Unix filename pattern for xAOD attribute names. Only used if --attr enabled.")
	flags.BoolVarP(&opts.Interactive, "interactive", "i", false, "(INACTIVE) Flip on/off interactive mode allowing you to navigate through the container types and properties.")
	flags.StringVar(&opts.Cache, "cache", opts.Cache, "Path of the inventory cache database (disabled when empty).")

	c.AddCommand(cacheCmd)
	c.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exiterror.New(exiterror.CodeUsage, err.Error())
	})

	return c
}

func dumpRun(c *cobra.Command, args []string) error {
	opts.Inputs = args

	ctrl := dumper.Controller{
		Logger:  newLogger(opts),
		Output:  storage.NewFileSystem(""),
		Reports: storage.NewFileSystem(opts.OutputDirectory),
		Stdout:  c.OutOrStdout(),
		Options: opts,
	}

	//

	if opts.Cache != "" {
		db, err := database.StormOpen(opts.Cache)
		if err != nil {
			return errors.Wrap(err, "could not open cache database")
		}
		defer db.Close()
		ctrl.Database = db
	}

	return dumper.Run(ctrl)
}

func newLogger(opts config.Options) logger.Logger {
	log := logrus.New()
	log.SetLevel(opts.Level())
	log.SetFormatter(&logger.LogrusTextFormatter{
		DisableColors:   opts.Batch,
		ForceColors:     !opts.Batch,
		ForceFormatting: true,
		PrefixRE:        regexp.MustCompile(`^(\[.*?\])\s`),
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger.WrapLogrus(log)
}

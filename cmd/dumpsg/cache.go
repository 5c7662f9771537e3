package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mdouchement/dumpsg/internal/config"
	"github.com/mdouchement/dumpsg/internal/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const dbname = "dumpsg.db"

var (
	cachePath string

	cacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Manage the inventory cache",
		Args:  cobra.NoArgs,
	}

	//

	cacheInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Init the cache database",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return database.StormInit(cacheDatabase())
		},
	}

	//

	cacheReindexCmd = &cobra.Command{
		Use:   "reindex",
		Short: "Reindex the cache database",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return database.StormReIndex(cacheDatabase())
		},
	}

	//

	cacheListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the cached inventories",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := database.StormOpen(cacheDatabase())
			if err != nil {
				return errors.Wrap(err, "could not open cache database")
			}
			defer db.Close()

			inventories, err := db.ListInventories()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tTREE\tENTRIES\tCONTAINERS\tUPDATED\tFILES")
			for _, inventory := range inventories {
				fmt.Fprintf(w, "%.12s\t%s\t%d\t%d\t%s\t%s\n",
					inventory.Key,
					inventory.Tree,
					inventory.Entries,
					inventory.Len(),
					inventory.UpdatedAt.Format("2006-01-02 15:04:05"),
					strings.Join(inventory.Files, ","),
				)
			}
			return w.Flush()
		},
	}

	//

	cachePurgeCmd = &cobra.Command{
		Use:   "purge",
		Short: "Delete all the cached inventories",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := database.StormOpen(cacheDatabase())
			if err != nil {
				return errors.Wrap(err, "could not open cache database")
			}
			defer db.Close()

			return db.DeleteAllInventories()
		},
	}
)

func init() {
	cacheCmd.PersistentFlags().StringVar(&cachePath, "path", config.EnvORDefault(config.EnvCachePath, dbname), "Path of the cache database")

	cacheCmd.AddCommand(cacheInitCmd)
	cacheCmd.AddCommand(cacheReindexCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
}

func cacheDatabase() string {
	if cachePath == "" {
		return dbname
	}
	return cachePath
}

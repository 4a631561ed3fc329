package cli

import (
	"fmt"
	"os"

	"github.com/gophersatwork/sigcache"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <source-file> <artifact-path>",
	Short: "Print the bytes of a cached artifact to stdout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sigcache.Open(args[0], sigcache.WithLogger(sigcache.DiscardLogger()))
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		data, err := c.Read(args[1])
		if err != nil {
			return fmt.Errorf("reading artifact: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <source-file>",
	Short: "Delete every artifact in the source file's cache directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sigcache.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		if err := c.DeleteCache(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <source-file>",
	Short: "Show cache statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sigcache.Open(args[0], sigcache.WithLogger(sigcache.DiscardLogger()))
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		stats, err := c.Stats()
		if err != nil {
			return fmt.Errorf("reading cache stats: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Directory: %s\n", c.Dir())
		fmt.Fprintf(os.Stdout, "Entries:   %d\n", stats.Entries)
		fmt.Fprintf(os.Stdout, "Size:      %.2f KB\n", float64(stats.TotalSize)/1024)
		if stats.Entries > 0 {
			fmt.Fprintf(os.Stdout, "Oldest:    %s ago\n", stats.OldestEntry)
			fmt.Fprintf(os.Stdout, "Newest:    %s ago\n", stats.NewestEntry)
		}
		return nil
	},
}

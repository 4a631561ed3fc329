package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gophersatwork/sigcache"
	"github.com/spf13/cobra"
)

var (
	writeForce    bool
	writeAlgo     string
	writeInterval time.Duration
	writeData     string
	writeFrom     string
)

var writeCmd = &cobra.Command{
	Use:   "write <source-file>",
	Short: "Write a payload into the cache for a source file",
	Long:  "Reads the payload from --data, --from, or stdin and writes it into the source file's cache directory unless an artifact with the same signature is still fresh.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := loadPayload()
		if err != nil {
			return err
		}

		opts := []sigcache.Option{sigcache.WithAlgorithm(writeAlgo)}
		if writeInterval > 0 {
			opts = append(opts, sigcache.WithInterval(writeInterval))
		}
		c, err := sigcache.Open(args[0], opts...)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		path, err := c.Write(payload, writeForce)
		if err != nil {
			return fmt.Errorf("writing payload: %w", err)
		}
		if path == "" {
			fmt.Fprintln(os.Stdout, "Payload unchanged, nothing written.")
			return nil
		}
		fmt.Fprintln(os.Stdout, path)
		return nil
	},
}

// loadPayload resolves the payload source: --data, then --from, then stdin.
func loadPayload() ([]byte, error) {
	if writeData != "" {
		return []byte(writeData), nil
	}
	if writeFrom != "" {
		data, err := os.ReadFile(writeFrom)
		if err != nil {
			return nil, fmt.Errorf("reading payload file: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading payload from stdin: %w", err)
	}
	return data, nil
}

func init() {
	writeCmd.Flags().BoolVarP(&writeForce, "force", "f", false, "write even when the payload is unchanged")
	writeCmd.Flags().StringVar(&writeAlgo, "algo", sigcache.DefaultAlgorithm, "signature algorithm (sha256, sha1, sha512, md5, xxhash64)")
	writeCmd.Flags().DurationVar(&writeInterval, "interval", 0, "refresh window, e.g. 30m or 24h")
	writeCmd.Flags().StringVar(&writeData, "data", "", "payload bytes as a string")
	writeCmd.Flags().StringVar(&writeFrom, "from", "", "read the payload from this file")
}

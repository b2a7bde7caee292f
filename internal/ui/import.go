package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/fleetdesk/internal/booking"
)

func (a *App) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [snapshot.json]",
		Short: "Import bookings and resources from a JSON export",
		Long: `Import a JSON export of the dashboard tables into the current store.

The file is either an object with "bookings", "drivers", "vehicles" and
"partners" arrays, or a bare array of bookings. Keys are camelCase as the
dashboard stores them. Records that already exist are updated.

Example:
  fleetdesk import ~/Downloads/export.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("snapshot file does not exist: %s", path)
				}
				return fmt.Errorf("opening snapshot: %w", err)
			}
			defer func() { _ = f.Close() }()

			snap, err := readSnapshot(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			if dryRun {
				fmt.Printf("Would import %s from %s\n", countLine(snap), path)
				return nil
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.ImportSnapshot(context.Background(), snap); err != nil {
				return fmt.Errorf("importing snapshot: %w", err)
			}

			a.logger.Infow("snapshot imported", "path", path, "bookings", len(snap.Bookings))
			fmt.Printf("Imported %s from %s\n", countLine(snap), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse the file without writing")
	return cmd
}

// readSnapshot decodes an export and fills in the defaults its records miss.
func readSnapshot(r io.Reader) (*booking.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	snap := &booking.Snapshot{}
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("empty snapshot")
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &snap.Bookings); err != nil {
			return nil, fmt.Errorf("decoding bookings: %w", err)
		}
	default:
		if err := json.Unmarshal(trimmed, snap); err != nil {
			return nil, fmt.Errorf("decoding snapshot: %w", err)
		}
	}

	for i, b := range snap.Bookings {
		if b == nil {
			return nil, fmt.Errorf("booking %d is null", i)
		}
		if b.Status != "" && !b.Status.Valid() {
			return nil, fmt.Errorf("booking %s: unknown status %q", b.ID, b.Status)
		}
	}

	snap.Normalize()
	return snap, nil
}

func countLine(s *booking.Snapshot) string {
	return fmt.Sprintf("%d bookings, %d drivers, %d vehicles, %d partners",
		len(s.Bookings), len(s.Drivers), len(s.Vehicles), len(s.Partners))
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}

package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"slidey/internal/filter"
	"slidey/internal/history"
	"slidey/internal/logging"
	"slidey/internal/scan"
	"slidey/internal/service"
	"slidey/internal/settings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var (
	dbPathFlag   string
	logLevelFlag string
	degreesFlag  int
	decodeFlag   bool
	logger       *logging.Logger
)

// OpenSettingsFunc opens the settings database in dir.
type OpenSettingsFunc func(dir string, logger logging.LoggerFunc) (*settings.DB, error)

// NewRootCmd creates the root command for the CLI application. openSettings
// is called by the commands that need persisted state, so tests can point
// it at a temporary database.
func NewRootCmd(openSettings OpenSettingsFunc) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:           "slidey-cli",
		Short:         "Slidey CLI - inspect image directories and apply slideshow filters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(cmd.ErrOrStderr(), logLevelFlag)
		},
	}

	withRecent := func(fn func(cmd *cobra.Command, rd *history.RecentDirectories) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db, err := openSettings(dbPathFlag, logger.Func("settings"))
			if err != nil {
				return fmt.Errorf("failed to open settings: %w", err)
			}
			defer db.Close()
			rd := history.NewRecentDirectories(db, settings.RecentDirectoriesKey, history.DefaultCapacity, logger.Func("history"))
			return fn(cmd, rd)
		}
	}

	// Scan command
	scanCmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "List the images of a directory in slideshow order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if decodeFlag {
				svc := service.NewService(&scan.FileScannerImpl{}, service.NewImageService(), logger.Func("service"))
				result, err := svc.LoadDirectory(dir)
				if err != nil {
					return err
				}
				for _, s := range result.Slides {
					b := s.Image.Bounds()
					cmd.Printf("%s\t%dx%d\t%s\n", s.Created.Format("2006-01-02 15:04:05"), b.Dx(), b.Dy(), s.Path)
				}
				cmd.Printf("%d images, %d skipped\n", len(result.Slides), result.Skipped)
				return nil
			}
			items := scan.Collect(&scan.FileScannerImpl{}, dir, logger.Func("scan"))
			for _, item := range items {
				cmd.Printf("%s\t%s\n", item.Created.Format("2006-01-02 15:04:05"), item.Path)
			}
			cmd.Printf("%d images\n", len(items))
			return nil
		},
	}
	scanCmd.Flags().BoolVar(&decodeFlag, "decode", false, "Decode every image and report the ones that would be skipped")
	rootCmd.AddCommand(scanCmd)

	// Info command
	infoCmd := &cobra.Command{
		Use:   "info [image]",
		Short: "Show dimensions, format and EXIF data of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, _, err := service.NewImageService().GetImageInfo(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Format: %s\n", info.Format)
			cmd.Printf("Size: %dx%d\n", info.Width, info.Height)
			cmd.Printf("Bytes: %d\n", info.Size)
			cmd.Printf("Modified: %s\n", info.ModTime.Format("2006-01-02 15:04:05"))
			keys := make([]string, 0, len(info.EXIFData))
			for k := range info.EXIFData {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				cmd.Printf("%s: %s\n", k, info.EXIFData[k])
			}
			return nil
		},
	}
	rootCmd.AddCommand(infoCmd)

	// Recent directories
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "Show or change the recent directories list",
		Args:  cobra.NoArgs,
		RunE: withRecent(func(cmd *cobra.Command, rd *history.RecentDirectories) error {
			return printRecent(cmd, rd)
		}),
	}
	recentListCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent directories, most recent first",
		Args:  cobra.NoArgs,
		RunE: withRecent(func(cmd *cobra.Command, rd *history.RecentDirectories) error {
			return printRecent(cmd, rd)
		}),
	}
	var addDir string
	recentAddCmd := &cobra.Command{
		Use:   "add [dir]",
		Short: "Record a directory as the most recent one",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			st, err := os.Stat(dir)
			if err != nil {
				return err
			}
			if !st.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			addDir = dir
			return nil
		},
		RunE: withRecent(func(cmd *cobra.Command, rd *history.RecentDirectories) error {
			if err := rd.Add(addDir); err != nil {
				return err
			}
			return printRecent(cmd, rd)
		}),
	}
	recentClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget all recent directories",
		Args:  cobra.NoArgs,
		RunE: withRecent(func(cmd *cobra.Command, rd *history.RecentDirectories) error {
			if err := rd.Clear(); err != nil {
				return err
			}
			cmd.Println("Recent directories cleared.")
			return nil
		}),
	}
	recentCmd.AddCommand(recentListCmd, recentAddCmd, recentClearCmd)
	rootCmd.AddCommand(recentCmd)

	// Filters
	rootCmd.AddCommand(filterCmd("enhance", "Auto-enhance levels, brightness and saturation", filter.AutoEnhance))
	rootCmd.AddCommand(filterCmd("smooth", "Reduce noise and resharpen", func(img image.Image) (image.Image, error) {
		return filter.NoiseReduction(img, filter.DefaultNoiseLevel, filter.DefaultSharpness)
	}))
	rotateCmd := filterCmd("rotate", "Rotate by a multiple of 90 degrees, clockwise", func(img image.Image) (image.Image, error) {
		return filter.Rotate(img, degreesFlag)
	})
	rotateCmd.Flags().IntVar(&degreesFlag, "degrees", 90, "Clockwise rotation; negative turns counter-clockwise")
	rootCmd.AddCommand(rotateCmd)

	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "dbpath", "", "Directory of the settings database (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "Log level: debug, info, warn or error")

	return rootCmd
}

func printRecent(cmd *cobra.Command, rd *history.RecentDirectories) error {
	dirs := rd.List()
	if len(dirs) == 0 {
		cmd.Println("No recent directories.")
		return nil
	}
	for i, dir := range dirs {
		cmd.Printf("%d. %s\n", i+1, dir)
	}
	return nil
}

// filterCmd builds a command that reads [in], applies fn and writes [out].
// The output format follows the extension of out.
func filterCmd(name, short string, fn func(image.Image) (image.Image, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [in] [out]",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if filepath.Clean(in) == filepath.Clean(out) {
				return errors.New("refusing to overwrite the input image")
			}
			img, _, err := service.NewImageService().Decode(in)
			if err != nil {
				return err
			}
			result, err := fn(img)
			if err != nil {
				return err
			}
			if err := imaging.Save(result, out); err != nil {
				return fmt.Errorf("saving %s: %w", out, err)
			}
			logger.Info().Str("in", in).Str("out", out).Str("filter", name).Msg("wrote image")
			cmd.Printf("Wrote %s\n", out)
			return nil
		},
	}
}

func main() {
	rootCmd := NewRootCmd(settings.Open)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

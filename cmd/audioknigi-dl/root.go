package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/akdl/audioknigi-dl/internal/audioknigi"
	"github.com/akdl/audioknigi-dl/internal/config"
	"github.com/akdl/audioknigi-dl/internal/download"
	"github.com/akdl/audioknigi-dl/internal/fsutil"
	"github.com/akdl/audioknigi-dl/internal/model"
)

type options struct {
	outputDir  string
	yes        bool
	oneFile    bool
	noTag      bool
	noCover    bool
	playlist   bool
	configPath string
	timeout    int
	verbose    bool
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "audioknigi-dl <audiobook-url>",
		Short:         "Download complete audiobooks from audioknigi.club",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Download directory. Default: <audio-book-title>")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite existing files without a prompt")
	cmd.Flags().BoolVarP(&opts.oneFile, "one-file", "1", false, "Merge all book chapters into one file")
	cmd.Flags().BoolVar(&opts.noTag, "no-tag", false, "Skip ID3 tagging of downloaded chapters")
	cmd.Flags().BoolVar(&opts.noCover, "no-cover", false, "Skip downloading the book cover")
	cmd.Flags().BoolVar(&opts.playlist, "playlist", false, "Write an M3U playlist next to the chapters")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config file")
	cmd.Flags().IntVar(&opts.timeout, "timeout", 0, "Seconds to wait for the playlist to load (default 60)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show verbose output")

	return cmd
}

// loadSettings builds the effective settings: config file (if any)
// overridden by command-line flags.
func loadSettings(opts *options) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if opts.configPath != "" {
		var err error
		settings, err = config.Load(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if opts.outputDir != "" {
		settings.OutputDir = opts.outputDir
	}
	if opts.yes {
		settings.ForceOverwrite = true
	}
	if opts.oneFile {
		settings.OneFile = true
	}
	if opts.noTag {
		settings.TagChapters = false
	}
	if opts.noCover {
		settings.SaveCover = false
	}
	if opts.playlist {
		settings.CreatePlaylist = true
	}
	if opts.timeout > 0 {
		settings.PlaylistWaitSeconds = opts.timeout
	}
	if opts.verbose {
		settings.Verbose = true
	}

	return settings, nil
}

func run(cmd *cobra.Command, bookURL string, opts *options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	book := model.NewBook(bookURL)

	path, err := fsutil.ResolveOutputDir(settings.OutputDir, book.Title)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotADirectory) {
			fmt.Println(err)
			os.Exit(1)
		}
		return err
	}

	ok, err := confirmOverwrite(cmd, settings, path)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Terminated.")
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Downloading %q to %q...\n", bookURL, path)

	manager := download.NewManager(settings, audioknigi.NewScraper(settings), func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !settings.Verbose {
			return
		}
		switch event.Level {
		case download.LevelError, download.LevelWarning:
			fmt.Fprintln(cmd.ErrOrStderr(), event.Message)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), event.Message)
		}
	})
	manager.SetByteProgress(newByteProgress())

	if err := manager.Initialize(ctx, bookURL); err != nil {
		return checkCancelled(ctx, err)
	}
	if err := manager.StartDownload(ctx, path); err != nil {
		return checkCancelled(ctx, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "All done!")
	return nil
}

// confirmOverwrite gates downloads into a directory that already holds
// files. Empty directories and -y proceed without a prompt.
func confirmOverwrite(cmd *cobra.Command, settings *config.Settings, path string) (bool, error) {
	if settings.ForceOverwrite {
		return true, nil
	}
	notEmpty, err := fsutil.ContainsFiles(path)
	if err != nil {
		return false, err
	}
	if !notEmpty {
		return true, nil
	}
	return confirm(cmd, fmt.Sprintf("The directory %q is not empty. Overwrite?", path)), nil
}

// confirm asks a yes/no question on the command's input stream.
// Anything but y/yes declines.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// newByteProgress renders one byte progress bar per chapter.
func newByteProgress() func(track *model.Track, written, total int64) {
	var current *model.Track
	var bar *progressbar.ProgressBar

	return func(track *model.Track, written, total int64) {
		if track != current {
			if bar != nil {
				bar.Finish()
			}
			current = track
			bar = progressbar.DefaultBytes(total, track.Slug)
		}
		bar.Set64(written)
	}
}

func checkCancelled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		fmt.Println("\nDownload cancelled.")
		os.Exit(130)
	}
	return err
}

package cmd

import (
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/inline"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("output", "o", "", "Write the snapshot stream to a file instead of stdout")
	inlineCmd.Flags().BoolP("pretty", "p", false, "Indent every snapshot")
	lo.Must0(viper.BindPFlag(key.InlinePretty, inlineCmd.Flags().Lookup("pretty")))
	inlineCmd.Flags().Bool("no-input", false, "Ignore stdin instead of reading commands from it")
}

// inlineCmd drives the controls without a terminal UI.
var inlineCmd = &cobra.Command{
	Use:   "inline [url or file]",
	Short: "Stream the control state as JSON lines and read commands from stdin",
	Long: `Load the media and print one JSON object per state change.

Commands are read from stdin, one per line:
  play                   toggle play/pause
  seek [seconds]         move the playhead
  preview [x] [width]    hover preview for a pointer at x on a track of width
  volume [0-1]           set the volume
  mute                   toggle mute
  rate [rate]            set the playback rate
  skip, rewind           jump forward or back
  fullscreen, pip        toggle display modes
  menu, close-menu       open or close the rate menu
  activity, leave        report pointer activity or the pointer leaving
  key [left|right|up|down|space]
                         press a global shortcut

The stream ends with a frame marked "final" when the media fails or the command is interrupted.`,
	Example: "  echo 'seek 30' | " + "playdeck inline ./video.mkv",
	Args:    cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return suggestTargets(toComplete), cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		var out io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			out = file
		}

		var in io.Reader = os.Stdin
		if lo.Must(cmd.Flags().GetBool("no-input")) {
			in = nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := openSession(ctx, args[0])
		handleErr(err)

		err = inline.Run(ctx, &inline.Options{
			Out:    out,
			In:     in,
			Engine: s.engine,
			Keys:   s.keys,
			Pretty: viper.GetBool(key.InlinePretty),
		})
		s.Close()
		handleErr(err)
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd prints the JSON Schema of a stream line.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the inline snapshot stream",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(inline.Schema()))
	},
}

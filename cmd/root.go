// Package cmd implements the command-line interface for playdeck.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/playdeck/playdeck/color"
	"github.com/playdeck/playdeck/constant"
	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/tui"
	"github.com/playdeck/playdeck/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("mpv", "", "Path or name of the mpv executable")
	lo.Must0(viper.BindPFlag(key.PlayerMPVPath, rootCmd.PersistentFlags().Lookup("mpv")))

	rootCmd.PersistentFlags().StringP("title", "t", "", "Title shown in the controls and the mpv window")
	lo.Must0(viper.BindPFlag(key.PlayerTitle, rootCmd.PersistentFlags().Lookup("title")))

	rootCmd.PersistentFlags().BoolP("autoplay", "a", true, "Start playback as soon as the media is loaded")
	lo.Must0(viper.BindPFlag(key.PlayerAutoplay, rootCmd.PersistentFlags().Lookup("autoplay")))
}

// rootCmd opens a media target and hands the terminal to the controls.
var rootCmd = &cobra.Command{
	Use:   constant.Playdeck + " [url or file]",
	Short: "Terminal playback controls for mpv",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Terminal playback controls for mpv"),
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return suggestTargets(toComplete), cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		if !util.IsTerminal() {
			handleErr(errors.New("the controls need an interactive terminal, use `" + constant.Playdeck + " inline` to script them"))
		}

		CheckDependencies()

		s, err := openSession(cmd.Context(), args[0])
		handleErr(err)

		err = tui.Run(&tui.Options{
			Engine:    s.engine,
			Keys:      s.keys,
			Transport: s.mpv,
			Title:     s.title,
		})
		s.Close()

		if errors.Is(err, tui.ErrReload) {
			err = util.Restart()
		}
		handleErr(err)
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

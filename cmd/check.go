package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/playdeck/playdeck/constant"
	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/player"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/version"
	"github.com/spf13/viper"
)

// CheckDependencies verifies that the configured mpv is installed and recent enough.
func CheckDependencies() {
	binary := viper.GetString(key.PlayerMPVPath)

	if _, err := exec.LookPath(binary); err != nil {
		printDependencyError("Missing Dependency", fmt.Sprintf("The required dependency '%s' was not found in your PATH.", binary))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	banner, err := player.Version(ctx, binary)
	if err != nil {
		log.Warnf("could not query the mpv version: %v", err)
		return
	}

	found, err := version.CheckMPV(banner)
	if errors.Is(err, version.ErrMPVTooOld) {
		printDependencyError("Outdated Dependency", fmt.Sprintf("mpv %s is installed but playdeck needs %s or newer.", found, version.MinimumMPV))
		os.Exit(1)
	}
	log.Debugf("using %s", banner)
}

func printDependencyError(heading, message string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: %s", icon.Get(icon.Fail), heading))
	body := style.New().Foreground(style.Text).Render(message)

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

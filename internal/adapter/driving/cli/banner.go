package cli

import (
	"fmt"

	"github.com/diillson/momcarebot/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner prints the banner and the version string.
func displayWelcomeBanner() {
	banner := `
  __  __                 ____                ____        _
 |  \/  | ___  _ __ ___ / ___|__ _ _ __ ___| __ )  ___ | |_
 | |\/| |/ _ \| '_ ` + "`" + ` _ \ |   / _` + "`" + ` | '__/ _ \  _ \ / _ \| __|
 | |  | | (_) | | | | | | |__| (_| | | |  __/ |_) | (_) | |_
 |_|  |_|\___/|_| |_| |_|\____\__,_|_|  \___|____/ \___/ \__|
`
	magenta := color.New(color.FgMagenta, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Println(magenta(banner))
	fmt.Println(cyan(fmt.Sprintf("MomCareBot (v%s)", version.FormatVersion())))
}

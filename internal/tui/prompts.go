package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// ErrInteractiveDisabled is returned when a prompt is needed but stdin is not
// a terminal. Callers should suggest --force for non-interactive use.
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts require a terminal (use --force to skip confirmation)")

// checkInteractiveAllowed returns an error if prompts cannot be shown
func checkInteractiveAllowed() error {
	if os.Getenv("CANOPYCTL_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return ErrInteractiveDisabled
	}
	return nil
}

// PromptConfirm prompts the user for yes/no confirmation
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	confirmed := defaultValue
	question := &survey.Confirm{
		Message: prompt,
		Default: defaultValue,
	}
	if err := survey.AskOne(question, &confirmed); err != nil {
		return false, fmt.Errorf("canceled")
	}
	return confirmed, nil
}

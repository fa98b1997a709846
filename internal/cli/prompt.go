package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/factgraph/factgraph/internal/model"
)

// terminalPrompter implements workflow.Prompter over stdin/stdout. Any step
// can be preset from a flag, which skips the interactive prompt for it.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer

	presetClaim int    // 1-based claim number, 0 means prompt
	presetText  string // relevance text, empty means prompt
	presetYes   bool   // skip the delete confirmation
}

func (p *terminalPrompter) SelectClaim(list []model.Claim) (model.Claim, bool, error) {
	if p.presetClaim > 0 {
		if p.presetClaim > len(list) {
			return model.Claim{}, false, fmt.Errorf("claim number %d out of range (1-%d)", p.presetClaim, len(list))
		}
		return list[p.presetClaim-1], true, nil
	}

	for i, claim := range list {
		fmt.Fprintf(p.out, "  %s %s\n", color.CyanString("%2d.", i+1), claim.Text)
	}
	fmt.Fprintf(p.out, "Select claim (1-%d, empty cancels): ", len(list))

	answer, err := p.readLine()
	if err != nil {
		return model.Claim{}, false, err
	}
	if answer == "" {
		return model.Claim{}, false, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(list) {
		return model.Claim{}, false, fmt.Errorf("invalid claim number %q", answer)
	}
	return list[n-1], true, nil
}

func (p *terminalPrompter) RelevanceText() (string, bool, error) {
	if p.presetText != "" {
		return p.presetText, true, nil
	}

	fmt.Fprint(p.out, "Relevance (empty cancels): ")
	answer, err := p.readLine()
	if err != nil {
		return "", false, err
	}
	if answer == "" {
		return "", false, nil
	}
	return answer, true, nil
}

func (p *terminalPrompter) ConfirmDelete(id string) (bool, error) {
	if p.presetYes {
		return true, nil
	}

	fmt.Fprintf(p.out, "Delete connection %s and strip its marker? [y/N]: ", id)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (p *terminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", nil
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

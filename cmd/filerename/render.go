package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"filerename/internal/config"
	"filerename/internal/renamer"
	"filerename/internal/workflow"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type summaryOptions struct {
	colorize bool
	verbose  bool
	failed   bool
}

func renderSummary(summary workflow.Summary, opts summaryOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s (%s)\n", summary.RunID, summary.Mode())
	fmt.Fprintf(&b, "Target: %s\n", summary.InitialRoot)
	if summary.FinalRoot != "" && summary.FinalRoot != summary.InitialRoot {
		fmt.Fprintf(&b, "Final:  %s\n", summary.FinalRoot)
	}

	if rows := changeRows(summary, opts.verbose); len(rows) > 0 {
		b.WriteString(renderTable([]string{"Kind", "From", "To", "Applied"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}, opts.colorize))
		b.WriteByte('\n')
	} else {
		b.WriteString(renderStatusLine("Changes", statusOK, "Nothing to rename", opts.colorize))
		b.WriteByte('\n')
	}

	counts := summary.CountByKind()
	if hidden := counts[renamer.ChangeEntry]; hidden > 0 && !opts.verbose {
		fmt.Fprintf(&b, "%s%d playlist entr(ies) rewritten; use --verbose to list them\n", statusIndent, hidden)
	}

	if summary.IsDir && summary.After.Extensions != nil {
		b.WriteString(renderCensus(summary, opts.colorize))
		b.WriteByte('\n')
	}

	switch {
	case opts.failed:
		b.WriteString(renderStatusLine("Result", statusError, "Run stopped; the tree may be partially renamed", opts.colorize))
	case summary.DryRun:
		b.WriteString(renderStatusLine("Result", statusWarn, "Dry run, nothing written. Re-run with --force to apply", opts.colorize))
	default:
		msg := fmt.Sprintf("%d change(s) applied", len(summary.Changes))
		if summary.Generated > 0 || summary.Retagged > 0 {
			msg += fmt.Sprintf(", %d playlist(s) generated, %d file(s) retagged", summary.Generated, summary.Retagged)
		}
		b.WriteString(renderStatusLine("Result", statusOK, msg, opts.colorize))
	}
	b.WriteByte('\n')
	return b.String()
}

func changeRows(summary workflow.Summary, verbose bool) [][]string {
	rows := make([][]string, 0, len(summary.Changes))
	for _, change := range summary.Changes {
		if change.Kind == renamer.ChangeEntry && !verbose {
			continue
		}
		rows = append(rows, []string{
			string(change.Kind),
			displayPath(summary.InitialRoot, change.From),
			displayPath(summary.InitialRoot, change.To),
			yesNo(change.Applied),
		})
	}
	return rows
}

// displayPath shortens paths below the target's parent so tables stay narrow.
func displayPath(root, path string) string {
	if path == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(filepath.Dir(root), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func renderCensus(summary workflow.Summary, colorize bool) string {
	rows := [][]string{{
		"directories",
		strconv.Itoa(summary.Before.Directories),
		strconv.Itoa(summary.After.Directories),
	}}
	keys := summary.After.Keys()
	for _, key := range summary.Before.Keys() {
		if _, ok := summary.After.Extensions[key]; !ok {
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		label := key
		if label == "" {
			label = "(no extension)"
		}
		rows = append(rows, []string{
			label,
			strconv.Itoa(summary.Before.Extensions[key]),
			strconv.Itoa(summary.After.Extensions[key]),
		})
	}
	return renderTable([]string{"Census", "Before", "After"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight}, colorize)
}

func renderRules(cfg *config.Config) string {
	rows := make([][]string, 0, len(cfg.Rules.Replace)+len(cfg.Rules.Remove))
	for i, rep := range cfg.Rules.Replace {
		rows = append(rows, []string{strconv.Itoa(i + 1), "replace", strconv.Quote(rep.From), strconv.Quote(rep.To)})
	}
	for i, token := range cfg.Rules.Remove {
		rows = append(rows, []string{strconv.Itoa(len(cfg.Rules.Replace) + i + 1), "remove", strconv.Quote(token), ""})
	}
	return renderTable([]string{"#", "Rule", "From", "To"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}, false) + "\n"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

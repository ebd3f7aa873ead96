package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghtree/internal/reader"
)

// completionTimeout keeps the shell from blocking on a slow API.
const completionTimeout = 2 * time.Second

// completePath provides dynamic shell completion for the path argument that
// follows an org/repo[@ref] argument.
func (a *app) completePath(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	rd, err := a.setup()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	completions, err := pathCompletions(ctx, rd, args[0], toComplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completions, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}

// pathCompletions lists the children of the directory part of toComplete
// whose names start with the last segment.
func pathCompletions(ctx context.Context, rd *reader.Reader, rawRef, toComplete string) ([]string, error) {
	root, err := openRef(rd, rawRef)
	if err != nil {
		return nil, err
	}

	dirPart, prefix := "", toComplete
	if i := strings.LastIndex(toComplete, "/"); i >= 0 {
		dirPart, prefix = toComplete[:i+1], toComplete[i+1:]
	}

	node, err := root.Lookup(ctx, dirPart)
	if err != nil {
		return nil, err
	}
	dir, ok := node.(*reader.Directory)
	if !ok {
		return nil, nil
	}
	entries, err := dir.Entries(ctx)
	if err != nil {
		return nil, err
	}

	var completions []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		switch e := entry.(type) {
		case *reader.Directory:
			completions = append(completions, formatCompletionLine(dirPart+e.Name()+"/", "Directory"))
		case *reader.File:
			completions = append(completions, formatCompletionLine(dirPart+e.Name(), fmt.Sprintf("File, %d bytes", e.Size())))
		}
	}
	return completions, nil
}

// formatCompletionLine joins a value and its description the way cobra
// expects ("value\tdescription").
func formatCompletionLine(value, desc string) string {
	return value + "\t" + desc
}

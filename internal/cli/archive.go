package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghtree/internal/config"
	"github.com/cbout22/ghtree/internal/export"
	"github.com/cbout22/ghtree/internal/reader"
)

// autoOutput is the value of a bare --output flag.
const autoOutput = "auto"

// downloader is implemented by clients able to fetch archive URLs.
type downloader interface {
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}

// newArchiveCmd creates the `archive` command.
// Usage: ghtree archive <org/repo[@ref]> [--format zipball|tarball] [-o file]
func newArchiveCmd(a *app) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "archive <org/repo[@ref]>",
		Short: "Locate or download a snapshot of a repository",
		Long: `Asks GitHub for a zipball or tarball of the repository at the given ref
(the default branch when no ref is given). Prints the download URL, or
saves the archive when --output is set. A bare -o saves it as
<repo>[-<ref>].zip or .tar.gz in the current directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := a.setup()
			if err != nil {
				return err
			}
			return runArchive(cmd.Context(), a.out, rd, a.connector, a.writer, args[0], config.ArchiveFormat(format), output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.Zipball), "Archive format: zipball or tarball")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Download the archive to this file")
	cmd.Flags().Lookup("output").NoOptDefVal = autoOutput

	return cmd
}

func runArchive(ctx context.Context, w io.Writer, rd *reader.Reader, connector reader.Connector, fw export.FileWriter,
	rawRef string, format config.ArchiveFormat, output string) error {
	if !format.IsValid() {
		return fmt.Errorf("invalid archive format %q (valid: %v)", format, config.ValidArchiveFormats())
	}
	ref, err := config.ParseRepoRef(rawRef)
	if err != nil {
		return err
	}
	rd.SetOrganization(ref.Org).SetName(ref.Repo)

	archive, err := rd.ExtractArchive(ctx, format, ref.Ref)
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Fprintln(w, archive.URL)
		return nil
	}
	if output == autoOutput {
		output = archiveFileName(ref, format)
	}

	client, err := connector.Connection(rd.Connection())
	if err != nil {
		return err
	}
	dl, ok := client.(downloader)
	if !ok {
		return fmt.Errorf("connection %q cannot download archives", rd.Connection())
	}

	f, err := fw.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	n, err := dl.Download(ctx, archive.URL, f)
	if err != nil {
		f.Abort()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(w, "✅ %s %s saved to %s (%d bytes)\n", ref.Raw(), format, output, n)
	return nil
}

// archiveFileName derives a local file name such as "widgets-v1.2.tar.gz".
func archiveFileName(ref config.RepoRef, format config.ArchiveFormat) string {
	name := ref.Repo
	if ref.Ref != "" {
		name += "-" + strings.NewReplacer("/", "-", "\\", "-").Replace(ref.Ref)
	}
	return name + format.FileExtension()
}

// This tool views and edits image metadata through exiftool.
//
// Example command-line:
//
//   exifmeta add -m "Author=John Doe" photo.jpg
//   exifmeta remove -k Author photo.jpg
//

package main

import (
	"context"
	"os"
	"os/signal"

	exifcommand "github.com/cxcheng/exifmeta/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := exifcommand.NewRootCommand().ExecuteContext(ctx); err != nil {
		// cobra has already printed the error
		stop()
		os.Exit(1)
	}
}

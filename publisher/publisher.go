// Package publisher writes rendered output to the publish dir.
package publisher

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	bp "github.com/sunwei/blogsite/bufferpool"
	"github.com/sunwei/blogsite/helpers"
	"github.com/sunwei/blogsite/minifiers"
	"github.com/sunwei/blogsite/output"
	"github.com/sunwei/blogsite/transform"
	"github.com/sunwei/blogsite/transform/urlreplacers"
	"go.uber.org/atomic"
)

// Publisher publishes a result file.
type Publisher interface {
	Publish(d Descriptor) error
}

// Descriptor describes the needed publishing chain for an item.
type Descriptor struct {
	// The content to publish.
	Src io.Reader

	// The OutputFormat of the this content.
	OutputFormat output.Format

	// Where to publish this content. This is a filesystem-relative path.
	TargetPath string

	// If set, will replace all root relative URLs with absolute ones below
	// this base URL.
	AbsURLPath string

	// Enable to minify the output using the OutputFormat defined above to
	// pick the correct minifier configuration.
	Minify bool
}

// NewDestinationPublisher creates a new DestinationPublisher writing to fs.
func NewDestinationPublisher(fs afero.Fs, min minifiers.Client) *DestinationPublisher {
	return &DestinationPublisher{fs: fs, min: min}
}

// DestinationPublisher is the default and currently only publisher. This
// publisher prepares and publishes an item to the defined destination, e.g. /public.
type DestinationPublisher struct {
	fs  afero.Fs
	min minifiers.Client

	filesWritten atomic.Uint64
}

// Publish applies any relevant transformations and writes the file
// to its destination, e.g. /public.
func (p *DestinationPublisher) Publish(d Descriptor) error {
	if d.TargetPath == "" {
		return errors.New("publish: must provide a TargetPath")
	}

	src := d.Src

	transformers := p.createTransformerChain(d)

	if len(transformers) != 0 {
		b := bp.GetBuffer()
		defer bp.PutBuffer(b)

		if err := transformers.Apply(b, d.Src); err != nil {
			return fmt.Errorf("failed to process %q: %w", d.TargetPath, err)
		}

		// This is now what we write to disk.
		src = b
	}

	f, err := helpers.OpenFileForWriting(p.fs, d.TargetPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = io.Copy(f, src); err != nil {
		return err
	}

	p.filesWritten.Inc()

	return nil
}

// FilesWritten returns the number of files published so far.
func (p *DestinationPublisher) FilesWritten() uint64 {
	return p.filesWritten.Load()
}

// Minifier returns the minify client used for the Minify option.
func (p *DestinationPublisher) Minifier() minifiers.Client {
	return p.min
}

func (p *DestinationPublisher) createTransformerChain(f Descriptor) transform.Chain {
	transformers := transform.NewEmpty()

	if f.AbsURLPath != "" && f.OutputFormat.IsHTML {
		transformers = append(transformers, urlreplacers.NewAbsURLTransformer(f.AbsURLPath))
	}

	if f.Minify {
		if tr := p.min.Transformer(f.OutputFormat.MediaType); tr != nil {
			transformers = append(transformers, tr)
		}
	}

	return transformers
}

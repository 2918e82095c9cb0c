package cleaner

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vcftools/vcf/internal/dedup"
	"github.com/vcftools/vcf/internal/filter"
	"github.com/vcftools/vcf/internal/vcard"
)

// ctxCheckInterval is how many records to process between context
// cancellation checks.
const ctxCheckInterval = 512

// Options configures a Cleaner
type Options struct {
	// Rules are the field-filtering rules. The zero value means
	// filter.DefaultConfig().
	Rules filter.Config

	// Identity controls duplicate detection. The zero value means
	// dedup.DefaultOptions() with the phone prefix taken from Rules, so
	// overriding the phone prefix steers both stages.
	Identity dedup.Options

	// Encoding names the source encoding: "", "utf-8", "windows-1251",
	// "windows-1252" or "latin-1". Empty means UTF-8.
	Encoding string

	// Logger receives pipeline progress. Nil means slog.Default().
	Logger *slog.Logger
}

// Cleaner runs the clean pipeline. Safe for concurrent use: per-run
// state (splitter, dedup seen-set) is created inside each call.
type Cleaner struct {
	opts   Options
	filter *filter.Filter
	logger *slog.Logger
}

// New validates the options and returns a Cleaner.
func New(opts Options) (*Cleaner, error) {
	if opts.Rules.PhonePrefix == "" && opts.Rules.DropPrefixes == nil {
		opts.Rules = filter.DefaultConfig()
	}
	if opts.Identity.PhonePrefix == "" && opts.Identity.NameFields == nil {
		opts.Identity = dedup.DefaultOptions()
		opts.Identity.PhonePrefix = opts.Rules.PhonePrefix
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	f, err := filter.New(opts.Rules)
	if err != nil {
		return nil, err
	}
	if err := opts.Identity.Validate(); err != nil {
		return nil, fmt.Errorf("invalid identity options: %w", err)
	}
	if _, err := decoderFor(opts.Encoding); err != nil {
		return nil, err
	}

	return &Cleaner{
		opts:   opts,
		filter: f,
		logger: opts.Logger.With("component", "cleaner"),
	}, nil
}

// Clean reads the source file, filters and deduplicates its records,
// and writes the survivors to the destination, overwriting it. The
// destination is not touched until the source has been read and
// processed, so a missing or unreadable source leaves no partial output.
func (c *Cleaner) Clean(ctx context.Context, source, destination string) (*Result, error) {
	result, survivors, crlf, err := c.run(ctx, source)
	if err != nil {
		return nil, err
	}
	result.Destination = destination

	if err := writeRecords(destination, survivors, crlf); err != nil {
		return nil, fmt.Errorf("writing destination file: %w", err)
	}
	result.Duration = time.Since(result.StartedAt)

	c.logger.Info("cleaning finished",
		"run_id", result.RunID,
		"source", source,
		"destination", destination,
		"parsed", result.BlocksParsed,
		"kept", result.RecordsKept,
		"no_phone", result.RecordsNoPhone,
		"duplicates", result.DuplicatesRemoved,
		"fields_removed", result.FieldsRemoved,
		"duration", result.Duration,
	)
	return result, nil
}

// Analyze runs the pipeline without writing anything. The Result is
// what Clean would have produced, minus the destination.
func (c *Cleaner) Analyze(ctx context.Context, source string) (*Result, error) {
	result, _, _, err := c.run(ctx, source)
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(result.StartedAt)
	return result, nil
}

// run executes the shared part of the pipeline and returns the
// surviving records in input order.
func (c *Cleaner) run(ctx context.Context, source string) (*Result, []*vcard.Record, bool, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		Source:    source,
		StartedAt: time.Now(),
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, nil, false, fmt.Errorf("reading source file: %w", err)
	}
	text, err := sanitize(data, c.opts.Encoding)
	if err != nil {
		return nil, nil, false, fmt.Errorf("reading source file %s: %w", source, err)
	}
	crlf := usesCRLF(data)

	logger := c.logger.With("run_id", result.RunID, "source", source)
	logger.Debug("cleaning started", "bytes", len(data), "rules", c.opts.Rules.String())

	dd, err := dedup.New(c.opts.Identity)
	if err != nil {
		return nil, nil, false, err
	}

	var survivors []*vcard.Record
	splitter := vcard.NewSplitter(strings.NewReader(text))
	for splitter.Next() {
		result.BlocksParsed++
		if result.BlocksParsed%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, false, fmt.Errorf("cleaning interrupted: %w", err)
			}
		}

		filtered, removed, kept := c.filter.Apply(splitter.Record())
		if !kept {
			result.RecordsNoPhone++
			continue
		}
		if !dd.Admit(filtered) {
			result.DuplicatesRemoved++
			continue
		}
		result.RecordsKept++
		result.FieldsRemoved += removed
		survivors = append(survivors, filtered)
	}
	if err := splitter.Err(); err != nil {
		return nil, nil, false, fmt.Errorf("reading source file: %w", err)
	}

	result.DiscardedLines = splitter.DiscardedLines()
	if result.DiscardedLines > 0 {
		logger.Debug("recovered from malformed input", "discarded_lines", result.DiscardedLines)
	}
	return result, survivors, crlf, nil
}

// writeRecords serializes records with canonical delimiters. The line
// terminator follows the source: CRLF in, CRLF out.
func writeRecords(path string, records []*vcard.Record, crlf bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	eol := "\n"
	if crlf {
		eol = "\r\n"
	}
	w := bufio.NewWriter(f)
	for _, rec := range records {
		w.WriteString(vcard.BeginMarker)
		w.WriteString(eol)
		for _, line := range rec.Lines() {
			w.WriteString(line)
			w.WriteString(eol)
		}
		w.WriteString(vcard.EndMarker)
		w.WriteString(eol)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

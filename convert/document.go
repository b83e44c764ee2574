package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TSTGoose/XMLParser/competence"
	"github.com/TSTGoose/XMLParser/diag"
	"github.com/TSTGoose/XMLParser/state"
	"github.com/TSTGoose/XMLParser/xmltree"
)

// ErrUnknownDocument is returned for well-formed XML which is neither plan nor
// competence model.
var ErrUnknownDocument = errors.New("unknown document kind")

type docKind int

const (
	kindUnknown docKind = iota
	kindPlan
	kindCompetence
)

func (k docKind) String() string {
	switch k {
	case kindPlan:
		return "plan"
	case kindCompetence:
		return "competence model"
	}
	return "unknown"
}

func detectKind(root xmltree.Node) docKind {
	switch {
	case root.Find("План") != nil:
		return kindPlan
	case root.Find(competence.PathSkills) != nil:
		return kindCompetence
	}
	return kindUnknown
}

// refID is stable identifier of the source used to correlate log records and
// debug report entries.
func refID(src string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file:///"+filepath.ToSlash(src))).String()
}

// processDocument converts single document. "src" is part of the source path
// (always including file name) relative to the original path. When actual file
// was specified it will be just base file name without a path. When looking
// inside archive or directory it will be relative path inside archive or
// directory (including base file name). "dst" is the destination directory
// where the converted file should be written.
func processDocument(ctx context.Context, r io.Reader, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var (
		id         = refID(src)
		outputName string
	)

	log.Info("Conversion starting", zap.String("from", src), zap.String("ref_id", id))
	defer func(start time.Time) {
		// single broken document should not stop the batch
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("ref_id", id))
		}
	}(time.Now())

	root, err := xmltree.Parse(r)
	if err != nil {
		return fmt.Errorf("unable to parse source (%s): %w", src, err)
	}

	var (
		doc   any
		diags diag.List
		dump  string
	)
	switch kind := detectKind(root); kind {
	case kindPlan:
		res, err := env.Extractor().Extract(root)
		if err != nil {
			return fmt.Errorf("unable to extract plan (%s): %w", src, err)
		}
		doc, diags, dump = res.Record, res.Diagnostics, res.String()
	case kindCompetence:
		m, dl, err := competence.Parse(root)
		if err != nil {
			return fmt.Errorf("unable to extract competence model (%s): %w", src, err)
		}
		doc, diags = m, dl
	default:
		return fmt.Errorf("%w: root element <%s> (%s)", ErrUnknownDocument, root.Tag(), src)
	}

	if diags.Len() > 0 {
		log.Warn("Document has problems", zap.String("from", src), zap.Int("count", diags.Len()),
			zap.Int("unknown keys", diags.Count(diag.ErrUnknownKey)), zap.Array("diagnostics", diags))
	}

	outputName = buildOutputPath(src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := writeDocument(outputName, doc, env.Format, env.Cfg.Document.Indent); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store conversion result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", id, filepath.Ext(outputName)), outputName)
		if len(dump) > 0 {
			env.Rpt.StoreData(fmt.Sprintf("dump-%s.txt", id), []byte(src+"\n"+dump))
		}
	}
	return nil
}

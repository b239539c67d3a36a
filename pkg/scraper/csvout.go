package scraper

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
)

// WriteCSV renders records as a pipe-delimited CSV with the column order of
// the output's schema kind. Columns a record does not carry come out empty.
func WriteCSV(w io.Writer, out Output) error {
	var columns []string
	switch {
	case out.Entity != "":
		d, ok := ecosystem.EntityDescriptorFor(out.Entity)
		if !ok {
			return errors.Errorf("unknown entity kind: %s", out.Entity)
		}
		columns = d.TemplateColumns()
	case out.Relationship != "":
		d, ok := ecosystem.RelationshipDescriptorFor(out.Relationship)
		if !ok {
			return errors.Errorf("unknown relationship kind: %s", out.Relationship)
		}
		columns = d.TemplateColumns()
	default:
		return errors.New("output has no schema kind")
	}

	cw := csv.NewWriter(w)
	cw.Comma = '|'
	if err := cw.Write(columns); err != nil {
		return errors.Wrap(err, "write header")
	}
	row := make([]string, len(columns))
	for _, rec := range out.Records {
		for i, col := range columns {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveAll writes every non-empty output of an accumulator to dir, one
// timestamped file per output. Returns the written file paths.
func SaveAll(dir, prefix string, acc *Accumulator, log *logrus.Logger) ([]string, error) {
	if log == nil {
		log = logrus.New()
	}
	stamp := time.Now().Format("20060102_150405")
	var paths []string
	for _, out := range acc.Outputs() {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.csv", prefix, out.Name, stamp))
		f, err := os.Create(path)
		if err != nil {
			return paths, errors.Wrapf(err, "create %s", path)
		}
		err = WriteCSV(f, out)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, errors.Wrapf(err, "write %s", path)
		}
		log.WithFields(logrus.Fields{"file": path, "records": len(out.Records)}).Info("saved scrape output")
		paths = append(paths, path)
	}
	return paths, nil
}

package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/graph"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/graph/metrics"
)

// Report aggregates the per-row outcome of one uploaded file.
type Report struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// Importer runs uploaded CSV files through validation, mapping and upserts.
// Rows are independent units of work: a row failure is recorded and the run
// continues, while a structural failure aborts before any row is processed.
type Importer struct {
	repo graph.Repository
	log  *logrus.Logger
}

// New creates an Importer on top of a repository.
func New(repo graph.Repository, log *logrus.Logger) *Importer {
	if log == nil {
		log = logrus.New()
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Importer{repo: repo, log: log}
}

// ImportEntities imports an entity CSV of the given kind.
func (imp *Importer) ImportEntities(ctx context.Context, r io.Reader, kind ecosystem.EntityKind) *Report {
	report := &Report{Errors: []string{}}
	desc, ok := ecosystem.EntityDescriptorFor(kind)
	if !ok {
		report.Errors = append(report.Errors, fmt.Sprintf("Unknown entity type: %s", kind))
		return report
	}
	table, err := ReadTable(r)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		metrics.ImportFiles.WithLabelValues("rejected").Inc()
		return report
	}
	report.Total = len(table.Rows)

	if missing := MissingColumns(table.Columns, desc.Required); len(missing) > 0 {
		report.Errors = append(report.Errors, missing...)
		metrics.ImportFiles.WithLabelValues("rejected").Inc()
		return report
	}

	for i, row := range table.Rows {
		props, err := MapEntityRow(row, desc)
		if err == nil {
			err = imp.repo.UpsertEntity(ctx, kind, props)
		}
		imp.record(report, string(kind), i, err)
	}
	imp.finish(report, string(kind))
	return report
}

// ImportRelationships imports a relationship CSV of the given kind.
func (imp *Importer) ImportRelationships(ctx context.Context, r io.Reader, kind ecosystem.RelationshipKind) *Report {
	report := &Report{Errors: []string{}}
	desc, ok := ecosystem.RelationshipDescriptorFor(kind)
	if !ok {
		report.Errors = append(report.Errors, fmt.Sprintf("Unknown relationship type: %s", kind))
		return report
	}
	table, err := ReadTable(r)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		metrics.ImportFiles.WithLabelValues("rejected").Inc()
		return report
	}
	report.Total = len(table.Rows)

	if missing := MissingColumns(table.Columns, desc.Required); len(missing) > 0 {
		report.Errors = append(report.Errors, missing...)
		metrics.ImportFiles.WithLabelValues("rejected").Inc()
		return report
	}

	for i, row := range table.Rows {
		rec, err := MapRelationshipRow(row, desc)
		if err == nil {
			err = imp.repo.UpsertRelationship(ctx, rec)
		}
		imp.record(report, string(kind), i, err)
	}
	imp.finish(report, string(kind))
	return report
}

// record books one row outcome; row numbers are 1-based in messages.
func (imp *Importer) record(report *Report, kind string, index int, err error) {
	if err == nil {
		report.Successful++
		metrics.RowsImported.WithLabelValues(kind, "success").Inc()
		return
	}
	report.Failed++
	metrics.RowsImported.WithLabelValues(kind, "failure").Inc()
	msg := fmt.Sprintf("Row %d: %s", index+1, err.Error())
	report.Errors = append(report.Errors, msg)
	imp.log.WithFields(logrus.Fields{"kind": kind, "row": index + 1}).WithError(err).Warn("row import failed")
	if errors.Is(err, graph.ErrEndpointNotFound) {
		imp.log.WithField("kind", kind).Debug("referenced entity missing; import entities before relationships")
	}
}

func (imp *Importer) finish(report *Report, kind string) {
	status := "ok"
	if report.Failed > 0 {
		status = "partial"
	}
	metrics.ImportFiles.WithLabelValues(status).Inc()
	imp.log.WithFields(logrus.Fields{
		"kind":       kind,
		"total":      report.Total,
		"successful": report.Successful,
		"failed":     report.Failed,
	}).Info("import finished")
}

// EntityTemplate renders a blank pipe-delimited CSV for one entity kind:
// the header plus a single empty row.
func EntityTemplate(kind ecosystem.EntityKind) ([]byte, error) {
	desc, ok := ecosystem.EntityDescriptorFor(kind)
	if !ok {
		return nil, errors.Errorf("unknown entity kind: %s", kind)
	}
	return renderTemplate(desc.TemplateColumns())
}

// RelationshipTemplate renders a blank pipe-delimited CSV for one
// relationship kind.
func RelationshipTemplate(kind ecosystem.RelationshipKind) ([]byte, error) {
	desc, ok := ecosystem.RelationshipDescriptorFor(kind)
	if !ok {
		return nil, errors.Errorf("unknown relationship kind: %s", kind)
	}
	return renderTemplate(desc.TemplateColumns())
}

func renderTemplate(columns []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '|'
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	if err := w.Write(make([]string, len(columns))); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

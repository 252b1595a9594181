package service

import (
	"context"
	"errors"
	"io"

	"github.com/sgsc/sgsc-services/internal/comm"
)

var ErrNoEvidence = errors.New("table does not take evidence images")

type Uploader interface {
	Upload(ctx context.Context, folder, recordID, contentType string, body io.Reader) (string, error)
}

type ImageSetter interface {
	SetImage(ctx context.Context, id, url string) error
}

// EvidenceService attaches uploaded images to incident and voucher rows.
type EvidenceService struct {
	uploader Uploader
	notify   *Notifier
	targets  map[string]ImageSetter
}

func NewEvidenceService(uploader Uploader, notify *Notifier) *EvidenceService {
	return &EvidenceService{uploader: uploader, notify: notify, targets: map[string]ImageSetter{}}
}

// Register makes table's rows accept images.
func (s *EvidenceService) Register(table string, setter ImageSetter) *EvidenceService {
	s.targets[table] = setter
	return s
}

// Attach uploads body and stores the resulting URL on the row.
func (s *EvidenceService) Attach(ctx context.Context, table, id, contentType string, body io.Reader) (string, error) {
	setter, ok := s.targets[table]
	if !ok {
		return "", ErrNoEvidence
	}
	url, err := s.uploader.Upload(ctx, table, id, contentType, body)
	if err != nil {
		return "", err
	}
	if err := setter.SetImage(ctx, id, url); err != nil {
		return "", err
	}
	s.notify.RecordChanged(ctx, table, comm.OpUpdate, id)
	return url, nil
}

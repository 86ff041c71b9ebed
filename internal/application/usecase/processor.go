package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/blob"
	"clipvault/internal/domain/repository/broker"
	"clipvault/internal/domain/repository/database"
	"clipvault/pkg/logger"
)

// Processor is the trim worker. It consumes queued jobs, cuts the requested
// window out of the source video with ffmpeg and attaches the result to the
// derived asset. Every job ends with a terminal status write followed by an
// ack; the source asset is never modified.
type Processor struct {
	blobs     blob.Store
	retriever database.Retriever
	updater   database.Updater
	ffmpeg    string
}

func NewProcessor(blobs blob.Store, retriever database.Retriever, updater database.Updater) *Processor {
	return &Processor{
		blobs:     blobs,
		retriever: retriever,
		updater:   updater,
		ffmpeg:    "ffmpeg",
	}
}

// Run consumes trim jobs until ctx is cancelled.
func (p *Processor) Run(ctx context.Context, receiver broker.Receiver, consumerName string) error {
	messages, err := receiver.Messages(ctx, consumerName)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, open := <-messages:
			if !open {
				return nil
			}
			p.handle(ctx, msg)
		}
	}
}

func (p *Processor) handle(ctx context.Context, msg broker.Message) {
	job, err := dto.DecodeTrimJob(msg.Body())
	if err != nil {
		logger.Error("discarding undecodable trim job", "body", msg.Body(), "err", err)
		p.ack(msg)

		return
	}

	if err := p.process(ctx, job); err != nil {
		logger.Error("trim job failed", "derived", job.DerivedAssetID, "err", err)
		if stErr := p.updater.SetStatus(ctx, job.DerivedAssetID, model.StatusError); stErr != nil {
			logger.Error("failed to mark derived asset as errored", "id", job.DerivedAssetID, "err", stErr)
		}
	}

	p.ack(msg)
}

func (p *Processor) process(ctx context.Context, job dto.TrimJob) error {
	source, err := p.retriever.GetByID(ctx, job.SourceAssetID)
	if err != nil {
		return fmt.Errorf("load source asset: %w", err)
	}

	workDir, err := os.MkdirTemp("", "clipvault-trim-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	ext := filepath.Ext(source.BlobRef)
	srcPath := filepath.Join(workDir, "source"+ext)
	if err := p.fetchBlob(ctx, source.Kind, source.BlobRef, srcPath); err != nil {
		return fmt.Errorf("fetch source blob: %w", err)
	}

	outPath := filepath.Join(workDir, "trimmed"+ext)
	cmd := exec.CommandContext(ctx, p.ffmpeg,
		"-y",
		"-i", srcPath,
		"-ss", strconv.FormatFloat(job.StartSeconds, 'f', -1, 64),
		"-to", strconv.FormatFloat(job.EndSeconds, 'f', -1, 64),
		"-c", "copy",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, out)
	}

	out, err := os.Open(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	result, err := p.blobs.Put(ctx, model.KindVideo, "trimmed-"+source.BlobRef, out)
	if err != nil {
		return fmt.Errorf("store trimmed blob: %w", err)
	}

	if err := p.updater.SetBlobRef(ctx, job.DerivedAssetID, result.Ref); err != nil {
		return p.undoPut(ctx, result.Ref, err)
	}
	if err := p.updater.SetStatus(ctx, job.DerivedAssetID, model.StatusReady); err != nil {
		return p.undoPut(ctx, result.Ref, err)
	}

	return nil
}

func (p *Processor) fetchBlob(ctx context.Context, kind model.Kind, ref, dest string) error {
	reader, err := p.blobs.OpenRange(ctx, kind, ref, 0, blob.WholeBlob)
	if err != nil {
		return err
	}
	defer reader.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

func (p *Processor) undoPut(ctx context.Context, ref string, cause error) error {
	if rmErr := p.blobs.Delete(ctx, model.KindVideo, ref); rmErr != nil {
		return errors.Join(cause, rmErr)
	}

	return cause
}

func (p *Processor) ack(msg broker.Message) {
	if err := msg.Ack(); err != nil {
		logger.Error("failed to ack trim job", "err", err)
	}
}

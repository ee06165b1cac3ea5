package events

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ProofUploadedTopic carries enrichment jobs from the upload boundary
// to the single enrichment worker.
const ProofUploadedTopic = "portfolio.proof_uploaded"

// NewGoChannelBus creates the in-process pub/sub used as the
// single-writer queue for proof enrichment. One subscriber consumes
// jobs sequentially, so extraction completions never race on the store.
func NewGoChannelBus(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
		},
		watermill.NewSlogLogger(logger),
	)
}

package web

import (
	"time"

	vm "github.com/ericfisherdev/gracehub/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/gracehub/internal/domain/model"
)

// toMessageViewModel converts a domain PastorMessage into its display form.
func toMessageViewModel(msg model.PastorMessage) *vm.MessageViewModel {
	return &vm.MessageViewModel{
		Title:     msg.Title,
		BodyHTML:  RenderMarkdown(msg.Body),
		UpdatedAt: msg.UpdatedAt.UTC().Format("January 2, 2006"),
		DateTime:  msg.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

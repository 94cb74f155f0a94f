package views

import (
	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
)

// SwitchToIndexesMsg returns to the index list
type SwitchToIndexesMsg struct{}

// SwitchToDocumentsMsg opens the documents page of an index
type SwitchToDocumentsMsg struct {
	Index string
}

// SwitchToAddMsg opens the add documents modal
type SwitchToAddMsg struct {
	Index string
}

// SwitchToEditMsg opens the edit document modal
type SwitchToEditMsg struct {
	Index    string
	Document domain.Document
}

// SwitchToDeleteMsg opens the delete confirmation for one document
type SwitchToDeleteMsg struct {
	Command    *commands.DeleteDocumentCommand
	DocumentID string
}

// SwitchToHelpMsg shows the key reference
type SwitchToHelpMsg struct{}

// CloseModalMsg closes the current modal without doing anything
type CloseModalMsg struct{}

// MutationSuccessMsg reports an enqueued add, update or delete
type MutationSuccessMsg struct {
	Index  string
	Result *commands.MutationResult
}

// MutationErrMsg reports a failed add, update or delete
type MutationErrMsg struct {
	Index string
	Err   error
}

package types

import "errors"

var (
	ErrMissingAnchorRow   = errors.New("required row label not found in sheet")
	ErrSourceNotFound     = errors.New("plan spreadsheet not found")
	ErrSheetNotFound      = errors.New("worksheet not found in spreadsheet")
	ErrTransportFailure   = errors.New("telegram request failed")
	ErrMissingCredentials = errors.New("missing TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID")
	ErrUnknownJob         = errors.New("unknown job")
)

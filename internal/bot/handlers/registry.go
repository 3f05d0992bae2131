package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// AnalyzeCallbackData is the callback payload carried by the inline
// analysis button sent with the welcome message.
const AnalyzeCallbackData = "start_analysis"

// RegisteredHandler represents a handler with its match rule and middleware.
// It encapsulates all information needed to register and document a handler.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all available
// command and callback handlers.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/analyze"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "analyze",
		Handler:     NewAnalyzeHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["callback:"+AnalyzeCallbackData] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     AnalyzeCallbackData,
		Handler:     NewAnalyzeCallbackHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}

	return handlers
}

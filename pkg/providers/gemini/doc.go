// Package gemini implements the Google Gemini provider adapter.
//
// This package provides an implementation of the providers.Provider
// interface for the Gemini generateContent API.
//
// # Basic Usage
//
//	config := providers.ProviderConfig{
//	    Name:   "gemini",
//	    APIKey: os.Getenv("GEMINI_API_KEY"),
//	}
//
//	provider, err := gemini.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	resp, err := provider.Complete(context.Background(), &providers.ChatRequest{
//	    SystemPrompt: "You are a helpful assistant.",
//	    UserText:     "Hello!",
//	})
//
// # Request Transformation
//
// The generateContent payload is a single contents entry whose parts array
// holds, in order, the system prompt, each prior turn's text, and the new
// user message. Turn roles are not transmitted; ordering alone conveys the
// conversation structure.
//
// # Response Transformation
//
// The reply is read from candidates[0].content.parts[0].text. A 2xx
// response without that field is treated as a refusal, using the API's
// error message when one is present.
package gemini

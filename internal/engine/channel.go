package engine

import (
	"context"
	"strings"

	"github.com/roach88/rotorgraph/internal/model"
)

// Code is one key press of a stream.
type Code struct {
	PlainText string `json:"plainText"`
	Encrypted string `json:"encrypted"`
}

// StreamResult is one enciphered word.
type StreamResult struct {
	Original  string `json:"original"`
	Scrambled string `json:"scrambled"`
	Code      []Code `json:"code"`
}

// ChannelResult is one enciphered message.
type ChannelResult struct {
	Original  string         `json:"original"`
	Scrambled string         `json:"scrambled"`
	Messages  []StreamResult `json:"messages"`
}

type cipherFunc func(ctx context.Context, m model.Machine, channel, keyPress int, letter, entropy string) (string, error)

// Channel enciphers text word by word. Words are split on the machine's
// LayerBy separator and the enciphered words are joined with single spaces.
func (e *Engine) Channel(ctx context.Context, m model.Machine, text string) (ChannelResult, error) {
	return e.channel(ctx, m, text, m.LayerBy, " ", e.Encrypt)
}

// DecryptChannel deciphers text produced by Channel on the same machine.
// Words are split on single spaces and the deciphered words are joined
// with LayerBy, so the result is the text Channel was given.
func (e *Engine) DecryptChannel(ctx context.Context, m model.Machine, text string) (ChannelResult, error) {
	sep := " "
	if m.LayerBy == "" {
		sep = ""
	}
	return e.channel(ctx, m, text, sep, m.LayerBy, e.Decrypt)
}

// Stream enciphers one word. channel is the 1-based position of the word in
// its message. Each output letter is passed on as entropy for the next key
// press.
func (e *Engine) Stream(ctx context.Context, m model.Machine, segment string, channel int) (StreamResult, error) {
	return e.stream(ctx, m, segment, channel, e.Encrypt)
}

// channel splits text on split (the whole text is one word when split is
// empty), runs each word through fn and joins the results with join.
func (e *Engine) channel(ctx context.Context, m model.Machine, text, split, join string, fn cipherFunc) (ChannelResult, error) {
	segments := []string{text}
	if split != "" {
		segments = strings.Split(text, split)
	}

	result := ChannelResult{Original: text, Messages: make([]StreamResult, 0, len(segments))}
	scrambled := make([]string, 0, len(segments))
	for i, segment := range segments {
		s, err := e.stream(ctx, m, segment, i+1, fn)
		if err != nil {
			return ChannelResult{}, err
		}
		result.Messages = append(result.Messages, s)
		scrambled = append(scrambled, s.Scrambled)
	}
	result.Scrambled = strings.Join(scrambled, join)
	return result, nil
}

func (e *Engine) stream(ctx context.Context, m model.Machine, segment string, channel int, fn cipherFunc) (StreamResult, error) {
	letters := model.Letters(segment)
	result := StreamResult{Original: segment, Code: make([]Code, 0, len(letters))}

	var b strings.Builder
	entropy := ""
	for i, letter := range letters {
		out, err := fn(ctx, m, channel, i+1, letter, entropy)
		if err != nil {
			return StreamResult{}, err
		}
		entropy = out
		result.Code = append(result.Code, Code{PlainText: letter, Encrypted: out})
		b.WriteString(out)
	}
	result.Scrambled = b.String()
	return result, nil
}

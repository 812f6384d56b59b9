//go:build js && wasm

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"syscall/js"
	"time"

	"sentiment/internal/adapter/analyzer"
	"sentiment/internal/adapter/memstore"
	"sentiment/internal/domain"
)

var (
	store    *memstore.MemoryStore
	keepTok  *analyzer.Tokenizer
	stripTok *analyzer.Tokenizer
)

func init() {
	store = memstore.NewMemoryStore()
	keepTok = analyzer.NewTokenizer(analyzer.ModeKeepPunctuation)
	stripTok = analyzer.NewTokenizer(analyzer.ModeRemovePunctuation)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("sentokKeep", js.FuncOf(tokenizeWith(keepTok)))
	js.Global().Set("sentokStrip", js.FuncOf(tokenizeWith(stripTok)))
	js.Global().Set("sentokIndex", js.FuncOf(indexContent))
	js.Global().Set("sentokTop", js.FuncOf(topTerms))
	js.Global().Set("sentokClear", js.FuncOf(clearIndex))

	<-c
}

func tokenizeWith(tok *analyzer.Tokenizer) func(js.Value, []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return makeError("usage: sentokKeep(text) or sentokStrip(text)")
		}

		tokens := tok.Tokenize(args[0].String())
		if tokens == nil {
			tokens = []string{}
		}

		return makeResult(map[string]interface{}{
			"tokens": tokens,
		})
	}
}

func indexContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: sentokIndex(filename, content, [keep])")
	}

	filename := args[0].String()
	content := args[1].String()
	tok := stripTok
	if len(args) > 2 && args[2].Truthy() {
		tok = keepTok
	}

	counts := make(map[string]int)
	total := 0
	_ = tok.TokenizeString(content, func(token string) {
		counts[token]++
		total++
	})

	doc := domain.Document{
		ID:      generateDocID(filename),
		Path:    filename,
		ModTime: time.Now(),
		Tokens:  total,
	}
	if err := store.PutDoc(doc, counts); err != nil {
		return makeError("indexing failed: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"success":  true,
		"tokens":   total,
		"filename": filename,
	})
}

func topTerms(this js.Value, args []js.Value) interface{} {
	n := 10
	if len(args) > 0 {
		n = args[0].Int()
	}

	top, err := store.TopTerms(n)
	if err != nil {
		return makeError("ranking failed: " + err.Error())
	}
	stats, _ := store.GetStats()

	return makeResult(map[string]interface{}{
		"top":   top,
		"stats": stats,
	})
}

func clearIndex(this js.Value, args []js.Value) interface{} {
	store.Clear()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}

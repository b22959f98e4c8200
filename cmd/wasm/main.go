//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/engine"
	"github.com/inamate/flowdraw/internal/geom"
)

var eng *engine.Engine

func main() {
	// The browser host resolves glyph paths itself, so there is no loader.
	eng = engine.New(document.NewFactory(nil, "glyphs"))

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	api.Set("loadDocument", js.FuncOf(loadDocument))
	api.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	api.Set("setViewport", js.FuncOf(setViewport))
	api.Set("createShape", js.FuncOf(createShape))
	api.Set("dropShape", js.FuncOf(dropShape))
	api.Set("addShapeAtCenter", js.FuncOf(addShapeAtCenter))
	api.Set("createImage", js.FuncOf(createImage))
	api.Set("addImageAtCenter", js.FuncOf(addImageAtCenter))
	api.Set("gesture", js.FuncOf(gesture))
	api.Set("keyPress", js.FuncOf(keyPress))
	api.Set("copy", js.FuncOf(func(js.Value, []js.Value) any { return eng.Copy() }))
	api.Set("cut", js.FuncOf(func(js.Value, []js.Value) any { return eng.Cut() }))
	api.Set("paste", js.FuncOf(paste))
	api.Set("delete", js.FuncOf(func(js.Value, []js.Value) any { return eng.Delete() }))
	api.Set("lock", js.FuncOf(func(js.Value, []js.Value) any { eng.Lock(); return nil }))
	api.Set("unlock", js.FuncOf(func(js.Value, []js.Value) any { eng.Unlock(); return nil }))
	api.Set("clearSelection", js.FuncOf(func(js.Value, []js.Value) any { eng.ClearSelection(); return nil }))
	api.Set("setText", js.FuncOf(setText))
	api.Set("setTextFont", js.FuncOf(setTextFont))
	api.Set("zoomIn", js.FuncOf(func(js.Value, []js.Value) any { eng.ZoomIn(); return eng.Zoom() }))
	api.Set("zoomOut", js.FuncOf(func(js.Value, []js.Value) any { eng.ZoomOut(); return eng.Zoom() }))
	api.Set("zoomGesture", js.FuncOf(zoomGesture))
	api.Set("scrollZoom", js.FuncOf(scrollZoom))

	// --- Queries (frontend ← engine) ---
	api.Set("render", js.FuncOf(render))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("screenToCanvas", js.FuncOf(screenToCanvas))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("getDocument", js.FuncOf(getDocument))
	api.Set("getMode", js.FuncOf(func(js.Value, []js.Value) any { return eng.Mode().String() }))
	api.Set("getZoom", js.FuncOf(func(js.Value, []js.Value) any { return eng.Zoom() }))
	api.Set("getFontFamilies", js.FuncOf(getFontFamilies))

	js.Global().Set("flowdrawEngine", api)
	js.Global().Set("flowdrawWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errResult(err error) any {
	return js.ValueOf(map[string]any{"error": err.Error()})
}

func okResult() any {
	return js.ValueOf(map[string]any{"ok": true})
}

func idResult(id string, err error) any {
	if err != nil {
		return errResult(err)
	}
	return js.ValueOf(map[string]any{"id": id})
}

func toJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing document JSON"})
	}
	var snap document.Snapshot
	if err := json.Unmarshal([]byte(args[0].String()), &snap); err != nil {
		return errResult(err)
	}
	if err := eng.Load(snap); err != nil {
		return errResult(err)
	}
	return okResult()
}

func loadSampleDocument(this js.Value, args []js.Value) any {
	if err := eng.LoadSample(); err != nil {
		return errResult(err)
	}
	return okResult()
}

func setViewport(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	eng.SetViewport(args[0].Float(), args[1].Float())
	return nil
}

func createShape(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return js.ValueOf(map[string]any{"error": "createShape(kind, x, y)"})
	}
	return idResult(eng.CreateShape(args[0].String(), args[1].Float(), args[2].Float()))
}

func dropShape(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return js.ValueOf(map[string]any{"error": "dropShape(kind, x, y)"})
	}
	return idResult(eng.DropShape(args[0].String(), args[1].Float(), args[2].Float()))
}

func addShapeAtCenter(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "addShapeAtCenter(kind)"})
	}
	return idResult(eng.AddShapeAtCenter(args[0].String()))
}

func createImage(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return js.ValueOf(map[string]any{"error": "createImage(path, x, y)"})
	}
	return idResult(eng.CreateImageElement(args[0].String(), args[1].Float(), args[2].Float()))
}

func addImageAtCenter(this js.Value, args []js.Value) any {
	path := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		path = args[0].String()
	}
	return idResult(eng.AddImageAtCenter(path))
}

func gesture(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	var g engine.Gesture
	if err := json.Unmarshal([]byte(args[0].String()), &g); err != nil {
		return errResult(err)
	}
	if err := eng.ApplyGesture(g); err != nil {
		return errResult(err)
	}
	return okResult()
}

func keyPress(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	k := engine.Key{Code: args[0].String()}
	if len(args) > 1 {
		k.Shortcut = args[1].Truthy()
	}
	return js.ValueOf(eng.KeyPress(k))
}

func paste(this js.Value, args []js.Value) any {
	return toJSON(eng.Paste())
}

func setText(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf(map[string]any{"error": "setText(entityId, text)"})
	}
	if err := eng.SetText(args[0].String(), args[1].String()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func setTextFont(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf(map[string]any{"error": "setTextFont(family, size)"})
	}
	if err := eng.SetTextFont(args[0].String(), args[1].Float()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func zoomGesture(this js.Value, args []js.Value) any {
	if len(args) > 0 {
		eng.ZoomGesture(args[0].Float())
	}
	return eng.Zoom()
}

func scrollZoom(this js.Value, args []js.Value) any {
	if len(args) > 0 {
		eng.ScrollZoom(args[0].Float())
	}
	return eng.Zoom()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return toJSON(engine.Target{Kind: engine.TargetBackground})
	}
	return toJSON(eng.HitTest(geom.Pt(args[0].Float(), args[1].Float())))
}

func screenToCanvas(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	return toJSON(eng.ScreenToCanvas(geom.Pt(args[0].Float(), args[1].Float())))
}

func getSelectionBounds(this js.Value, args []js.Value) any {
	return js.ValueOf(engine.RectToJSON(eng.SelectionBounds()))
}

func getSelection(this js.Value, args []js.Value) any {
	return toJSON(eng.Selection())
}

func getDocument(this js.Value, args []js.Value) any {
	snap, err := eng.Snapshot()
	if err != nil {
		return errResult(err)
	}
	return toJSON(snap)
}

func getFontFamilies(this js.Value, args []js.Value) any {
	out := make([]any, len(engine.FontFamilies))
	for i, f := range engine.FontFamilies {
		out[i] = f
	}
	return js.ValueOf(out)
}

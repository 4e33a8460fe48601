// Package canopy routes pointer, touch and keyboard input to a retained
// tree of UI nodes for [Ebitengine] games.
//
// Canopy provides the event system, raycasting, hover tracking, press and
// click detection, drag and drop, scrolling, selection and keyboard
// navigation that every interactive 2D interface needs. Rendering stays in
// your hands: canopy decides who receives an event, you decide what it
// looks like.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	sys := canopy.NewEventSystem()
//	root := canopy.NewNode("root")
//	sys.Raycasters.Add(canopy.NewNodeRaycaster(root, nil))
//
//	in, _ := canopy.NewEbitenInput(canopy.DefaultKeyBindings())
//	sys.AddPoller(in)
//	sys.AddModule(canopy.NewStandaloneInputModule(sys, in, canopy.DefaultStandaloneConfig()))
//
//	canopy.Run(sys, canopy.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [EventSystem.Update] once per tick.
//
// # Nodes and handlers
//
// Every interactive element is a [Node]. Nodes form a tree; children inherit
// their parent's transform. A node is hit wherever its [HitShape] (or its
// Width x Height rectangle) contains the pointer.
//
// Behavior attaches to nodes as handler values. A handler implements any
// subset of the capability interfaces ([PointerClickHandler],
// [DragHandler], [SelectHandler], ...) and receives exactly those events:
//
//	type counter struct{ clicks int }
//
//	func (c *counter) OnPointerClick(ev *canopy.PointerEventData) { c.clicks++ }
//
//	button := canopy.NewRect("button", 120, 32)
//	button.AddHandler(&counter{})
//
// Function adapters such as [PointerClickFunc] wrap a plain func. A handler
// that also implements [Enabler] is skipped while disabled.
//
// # Delivery
//
// [Execute] delivers an event to one node; [ExecuteHierarchy] bubbles it to
// the nearest ancestor that handles it; [GetEventHandler] finds that
// ancestor without delivering. Panicking handlers are recovered and logged.
//
// # Raycasting
//
// Raycasters map a screen position to hit nodes. [NodeRaycaster] tests a
// node tree, [Physics2DRaycaster] queries a Chipmunk space. The
// [EventSystem] merges all hits under a deterministic front-to-back order
// (camera depth, raycaster priorities, sorting layer and order, depth,
// distance, then discovery order).
//
// # Input modules
//
// An [InputModule] turns raw [Input] into events. [StandaloneInputModule]
// handles the mouse (three buttons and the wheel), touches, and axis/button
// navigation with key repeat. Exactly one registered module is active per
// frame.
//
// # Widgets
//
// [Selectable], [Button] and [Toggle] implement the common widget
// behaviors (state tints via [gween], explicit navigation, toggle groups)
// on top of the handler interfaces.
//
// # Testing
//
// [SyntheticInput] is a scripted [Input] that queues whole frames, and
// [TestRunner] plays JSON scripts through it. Together with
// [EventSystem.SetClock] they make frame-exact tests of click counting,
// drag thresholds and key repeat possible without a window.
//
// # Configuration
//
// [LoadConfigFile] reads YAML settings; [EventSystem.WatchConfig] reloads
// them when the file changes.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package canopy

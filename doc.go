// Package reforge is a live-reload harness for [Ebitengine] programs.
//
// Reforge keeps a program running while its Kage shader sources and even its
// compiled logic change on disk. A background watcher records changed shader
// paths, an optional plugin host tracks replacement of the program's logic
// unit, and a per-frame orchestrator rebuilds the affected passes without
// restarting the process: the edit/save/see loop of a shader playground,
// for any Ebitengine program.
//
// # Quick start
//
// Implement [Program] for your render logic and hand it to [Run], which
// creates the window, the shader watcher, and the game loop:
//
//	reforge.Run(&MyProgram{}, reforge.RunConfig{
//		Title: "My Demo", Width: 800, Height: 600,
//		ShaderRoot: "shaders",
//	})
//
// Save any file under shaders/ while the window is open and the program's
// [Program.RebuildPasses] runs on the next frame. If a rebuild fails, the
// error is logged and the previous passes stay bound; fix the file and save
// again.
//
// # Shader modules
//
// Shader sources are plain Kage files that may include each other with an
// import directive on its own line:
//
//	#import "common.kage"
//
// [ShaderLibrary.Build] flattens the import graph into a single compilable
// source, emitting each module's body at most once even when modules import
// each other cyclically. [ShaderLibrary] reads from any [io/fs.FS]: use
// [os.DirFS] during development so edits are picked up, and an embed.FS in
// shipped builds.
//
// # Logic swapping
//
// On platforms with plugin support, the swappable part of a program can be
// built with -buildmode=plugin and exposed through a [PluginHost]. The host
// watches the plugin file and drives the reload phases
// (Stable, Reloading, Reloaded, back to Stable) while the orchestrator
// replaces the program wholesale and rebuilds its passes. Rendering is
// skipped while a swap is in flight, so the old logic is never entered
// mid-replacement.
//
// # Pieces, individually
//
// Every part of the harness is usable on its own: [ReloadState] is the
// shared record producers and the frame loop coordinate through,
// [WatchShaders] feeds it from the filesystem, [MonitorSwaps] drives the
// phase cycle from any [SwapObserver], and [Game] is an [ebiten.Game] you
// can embed in your own loop instead of calling [Run].
//
// [Ebitengine]: https://ebitengine.org
package reforge

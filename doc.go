// Package spritepack exports frame-based 2D animations as delta-compressed
// sprite packages for game engines and canvas renderers.
//
// The pipeline analyzes temporal redundancy across an animation's frames:
// pixels that never change beyond a tolerance become a static base image,
// and each frame contributes only its changed tiles, packed into a single
// delta atlas. The package bundles the base raster, the atlas, and a
// declarative metadata.json a player replays with plain blits.
//
// # Exporting
//
//	timeline := &spritepack.Timeline{FPS: 12, Tracks: tracks}
//	res, err := spritepack.Export(spritepack.FlatCompositor{}, timeline, spritepack.Options{
//		Threshold: 4,
//		TileSize:  32,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if res == nil {
//		return // nothing visible to export
//	}
//	spritepack.SavePackage("hero.zip", res)
//
// Export returns (nil, nil) when the timeline has no exportable frames or
// no output size can be resolved: no package, but not an error.
//
// # Compositing
//
// Frame rendering is delegated to a [Compositor]. [FlatCompositor]
// composites cell rasters stored on the timeline and suffices for
// tooling and tests; authoring applications plug in their own renderer.
//
// # Playback
//
// The player subpackage replays exported packages on [Ebitengine]; any
// runtime can implement the contract in the bundled GUIDE.md directly
// from metadata.json.
//
// [Ebitengine]: https://ebitengine.org
package spritepack

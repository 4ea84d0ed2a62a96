// Package pipeline provides a framework for rendering pages in sequence.
//
// Every page goes through the same stages: filter the catalog with the
// page's criteria, rank the survivors, then generate the page content.
// Each stage is implemented as a Step that receives the current
// model.PageResult and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context when building many pages
//
// The pipeline supports both single page renders and batch processing with
// concurrency control using errgroup.
package pipeline

// Package cli provides the interactive command-line client of the recipe
// sharing service.
//
// It wires configuration, the local session store, the API client and the
// listing and detail controllers behind a read–eval–print loop. Typical flow:
// restore the stored session, load tags and categories, then execute user
// commands until "exit" or EOF.
//
// Key features:
//   - Login / Register / Logout with session expiry detection
//   - Browse all recipes, your own and favorites, with search and paging
//   - Show a recipe with a serving calculator and a cooking checklist
//   - Create, edit, share and delete your recipes
//   - Edit or delete your profile
//   - Export your recipes as JSON or YAML to a directory or S3 bucket
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

// Package create materializes a new Frontity project on disk.
//
// Run executes a fixed sequence of steps against the target directory:
// ensure the directory, write README.md, package.json, the settings file and
// (in typescript mode) tsconfig.json, fetch the starter theme into packages/,
// install dependencies and download a favicon. Every step is announced as a
// progress event before it runs. When a step fails, or the context is
// cancelled, the directory is rolled back before the error is reported.
package create

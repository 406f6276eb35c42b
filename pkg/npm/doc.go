// Package npm talks to an npm registry and runs the project's package
// manager. It resolves published versions, downloads and unpacks package
// tarballs, and installs dependencies through a pluggable Runner.
package npm

package mendel

// Version is the library version reported by the CLI and the server adapters.
const Version = "0.1.0"

// Package memory provides retrieval-augmented grounding over a user's
// journal entries.
//
// Entries are stored with precomputed embeddings, namespaced by UserID.
// At turn time the Retriever embeds the user's message, ranks the user's
// records by cosine similarity, and concatenates the best matches into a
// bounded grounding context for the mentor prompt.
//
// Architecture:
//   - Store: vector storage backend (chromem-go embedded, SQLite on disk)
//   - Embedder: text-to-vector conversion (ONNX local model, mock for tests)
//   - Retriever: orchestrates embed, query, rank, and context assembly
//
// Grounding is best-effort by design: if the embedder or the store fails,
// the Retriever returns an empty context and the turn proceeds ungrounded.
package memory

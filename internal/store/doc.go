// Package store persists ordered collections of records as single
// authenticated-encrypted files.
//
// # Transaction Pattern
//
// Every feature follows the same cycle:
//
//	f := store.NewFile[records.Task](cfg.TasksPath(), key)
//	tasks, err := f.Load()            // missing file loads as empty
//	task, err := tasks.Append(func(id int) (records.Task, error) {
//	    return records.NewTask(id, "Buy milk", time.Now())
//	})
//	err = f.Save(tasks)               // full snapshot, atomic replace
//
// There is no cache, no partial save and no locking. Two processes running
// this cycle against the same file concurrently lose the earlier save: the
// later Save replaces the whole file with its own snapshot.
//
// # File Format
//
// The plaintext is a UTF-8 JSON array of record objects in collection
// order. It is sealed with secrets.Seal and written with a temp-file,
// fsync, rename sequence, so an interrupted save leaves the previous file
// in place.
//
// # Errors
//
//   - ErrDecryptFailed: the file did not authenticate under the key
//   - ErrMalformedPayload: the plaintext is not an array of valid records
//   - ErrRecordNotFound: Get, Update or Remove on an absent identifier
//   - ErrValidation: a record failed its shape rules; nothing was changed
//   - ErrStorageUnavailable: the file could not be read or written
package store

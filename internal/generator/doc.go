// Package generator renders templates and writes them to disk.
//
// Generators build a list of Operations and hand it to Execute, which
// validates everything before touching the file system:
//
//	ops := generator.WriteOps(root, files)
//	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: dryRun}); err != nil {
//	    return err
//	}
//
// There is no rollback. A failure part way through leaves the files that
// were already written.
package generator

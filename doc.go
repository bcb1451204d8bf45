// Package appsettings migrates <appSettings> entries from legacy XML
// configuration files into a project's appsettings.json.
//
// The migration runs in two phases that share one value:
//
//   - Analyze collects every <add key="" value=""/> entry from the
//     configuration sources (later sources override earlier ones) and drops
//     the ones whose name already exists, ignoring case, in any existing
//     settings file. The result is a ResidualSet.
//   - Merge appends the residual settings to the target settings file with
//     JSON types inferred from their text (bool, then int, then float, then
//     string), keeping every existing property and its order.
//
// Migrator wraps both phases as a Step driven by a Pipeline against a
// Workspace; the msbuild package provides a file-backed Workspace.
//
// Typical usage:
//
//	ws := msbuild.NewWorkspace("MyApp.csproj")
//	p := appsettings.NewPipeline([]appsettings.Step{appsettings.NewMigrator(appsettings.DefaultOptions())})
//	report, err := p.Run(ctx, ws)
//
// Packages:
//   - settingsdoc: ordered JSON settings documents, lenient read and strict write.
//   - legacy: XML configuration sources.
//   - msbuild: project file access (item queries, reload, save).
//   - i18n: issue messages.
package appsettings

/*
Package schema loads the structural-validation documents that describe a
component's configurable properties.

Schemas ship inside the module's resource bundle and are addressed by
convention from the component's meta name:

	/<metaName lowercased>/<resourceFile>

For the meta name "toastSileo" and the file "toastsileo.props.json" the
loader reads /toastsileo/toastsileo.props.json. The convention is shared with
the packaging of the browser assets and must not change.

Loading is eager. A descriptor is built once per process and a schema that
cannot be found or compiled is a packaging defect: Load returns a *LoadError
and the caller aborts initialisation. There is no default schema and no
retry.

Documents are compiled with github.com/santhosh-tekuri/jsonschema/v6, so the
same Schema value can validate a props document before it reaches the host.
*/
package schema

package initgen

import (
	"sort"
	"strings"
)

// defaultLazyBoilerplate is the built-in deferred-resolution shim. It
// defines a module-level __getattr__ (PEP 562) that imports a submodule
// or symbol on first access and caches it as a module-level binding, so
// resolution cost is paid at most once per name.
const defaultLazyBoilerplate = `def lazy_import(module_name, submodules, submod_attrs):
    """
    Boilerplate to define PEP 562 __getattr__ for lazy import
    https://www.python.org/dev/peps/pep-0562/
    """
    import importlib
    import sys
    name_to_submod = {
        func: mod for mod, funcs in submod_attrs.items()
        for func in funcs
    }

    def __getattr__(name):
        if name in submodules:
            attr = importlib.import_module(
                '{module_name}.{name}'.format(
                    module_name=module_name, name=name)
            )
        elif name in name_to_submod:
            submodname = name_to_submod[name]
            module = importlib.import_module(
                '{module_name}.{submodname}'.format(
                    module_name=module_name, submodname=submodname)
            )
            attr = getattr(module, name)
        else:
            raise AttributeError(
                'No {module_name} attribute {name}'.format(
                    module_name=module_name, name=name))
        globals()[name] = attr
        return attr
    return __getattr__`

// dirOverride enables reflective enumeration without forcing resolution.
const dirOverride = `def __dir__():
    return __all__`

// renderLazyManifest renders the __getattr__ assignment advertising the
// submodule set and the symbol-to-submodule mapping.
func renderLazyManifest(submodules []string, submodAttrs []FromImport) string {
	b := &strings.Builder{}

	b.WriteString("__getattr__ = lazy_import(\n")
	b.WriteString("    __name__,\n")
	b.WriteString("    submodules=")
	b.WriteString(pySetLiteral(submodules, "    "))
	b.WriteString(",\n")
	b.WriteString("    submod_attrs=")
	b.WriteString(pyDictLiteral(submodAttrs, "    "))
	b.WriteString(",\n")
	b.WriteString(")")

	return b.String()
}

// pySetLiteral renders names as a sorted Python set literal, one element
// per line, with closing brace at indent.
func pySetLiteral(names []string, indent string) string {
	if len(names) == 0 {
		return "set()"
	}

	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	b := &strings.Builder{}
	b.WriteString("{\n")

	for _, n := range sorted {
		b.WriteString(indent + "    '" + n + "',\n")
	}

	b.WriteString(indent + "}")

	return b.String()
}

// pyDictLiteral renders the symbol manifest as a Python dict literal
// mapping each submodule to its symbol list, preserving discovery order.
func pyDictLiteral(entries []FromImport, indent string) string {
	if len(entries) == 0 {
		return "{}"
	}

	b := &strings.Builder{}
	b.WriteString("{\n")

	for _, e := range entries {
		name := strings.TrimLeft(e.Module, ".")
		b.WriteString(indent + "    '" + name + "': [\n")

		for _, attr := range e.Names {
			b.WriteString(indent + "        '" + attr + "',\n")
		}

		b.WriteString(indent + "    ],\n")
	}

	b.WriteString(indent + "}")

	return b.String()
}

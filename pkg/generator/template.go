package generator

// Placeholder tokens recognized in the output template. ModuleName and
// WrappedModule are required; Includes and IncludeBoost are substituted when
// present.
const (
	PlaceholderModuleName    = "{module_name}"
	PlaceholderWrappedModule = "{wrapped_module}"
	PlaceholderIncludes      = "{includes}"
	PlaceholderIncludeBoost  = "{include_boost}"
)

// DefaultTemplate is the stock pybind11 module template used when the caller
// supplies none of its own.
const DefaultTemplate = `{include_boost}#include <pybind11/pybind11.h>
#include <pybind11/operators.h>
#include <pybind11/stl.h>
#include <boost/archive/text_oarchive.hpp>
#include <boost/archive/text_iarchive.hpp>
#include <sstream>

{includes}

using namespace std;

namespace py = pybind11;

PYBIND11_MODULE({module_name}, m_) {
    m_.doc() = "pybind11 wrapper of {module_name}";

{wrapped_module}
}
`

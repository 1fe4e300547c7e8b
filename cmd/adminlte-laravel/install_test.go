package main

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/acacha/adminlte-laravel-installer/internal/errors"
	"github.com/acacha/adminlte-laravel-installer/internal/stub"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeTool is a shell script standing in for llum, composer or php. It
// appends its argv to the call log, noting whether config/app.php exists.
const fakeTool = `#!/bin/sh
if [ -f config/app.php ]; then app=yes; else app=no; fi
echo "%[1]s $* app=$app" >> %[2]q
echo "%[1]s output"
exit "${FAKE_%[3]s_EXIT:-0}"
`

func writeFakeTool(dir, name, callLog string) {
	script := fmt.Sprintf(fakeTool, name, callLog, strings.ToUpper(name))
	Expect(os.WriteFile(filepath.Join(dir, name), []byte(script), 0755)).To(Succeed())
}

func setenv(key, value string) {
	DeferCleanup(os.Setenv, key, os.Getenv(key))
	Expect(os.Setenv(key, value)).To(Succeed())
}

func resetFlags() {
	rootCfg = rootConfig{logLevel: "warn", errorFormat: "text"}
	installCfg = installConfig{}
	versionFormat = "text"
}

func execute(args ...string) (string, error) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

var _ = Describe("install", func() {
	var (
		home    string
		project string
		binDir  string
		callLog string
	)

	calls := func() []string {
		data, err := os.ReadFile(callLog)
		if os.IsNotExist(err) {
			return nil
		}
		Expect(err).NotTo(HaveOccurred())
		return strings.Split(strings.TrimSpace(string(data)), "\n")
	}

	BeforeEach(func() {
		if runtime.GOOS == "windows" {
			Skip("fake tools are shell scripts")
		}

		home = GinkgoT().TempDir()
		project = GinkgoT().TempDir()
		binDir = GinkgoT().TempDir()
		callLog = filepath.Join(GinkgoT().TempDir(), "calls.log")

		Expect(os.Mkdir(filepath.Join(project, "config"), 0755)).To(Succeed())
		for _, name := range []string{"llum", "composer", "php"} {
			writeFakeTool(binDir, name, callLog)
		}

		setenv("HOME", home)
		setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
		for _, name := range []string{"LLUM", "COMPOSER", "PHP"} {
			setenv("FAKE_"+name+"_EXIT", "")
		}

		wd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(project)).To(Succeed())
		DeferCleanup(os.Chdir, wd)

		resetFlags()
	})

	Context("with llum", func() {
		It("runs llum package AdminLTE by default", func() {
			output, err := execute("install")
			Expect(err).NotTo(HaveOccurred())

			Expect(calls()).To(Equal([]string{"llum package AdminLTE app=no"}))
			Expect(output).To(ContainSubstring("llum package AdminLTE"))
			Expect(output).To(ContainSubstring("llum output"))
			Expect(filepath.Join(project, "config", "app.php")).NotTo(BeAnExistingFile())
		})

		It("passes --dev and the combined package token", func() {
			_, err := execute("install", "--dev", "--use-vendor-publish", "--dontforce")
			Expect(err).NotTo(HaveOccurred())

			Expect(calls()).To(Equal([]string{"llum package --dev AdminLTEVendorPublishDontForce app=no"}))
		})

		It("prefers llum from the composer global bin directory", func() {
			globalBin := filepath.Join(home, ".composer", "vendor", "bin")
			Expect(os.MkdirAll(globalBin, 0755)).To(Succeed())
			script := fmt.Sprintf("#!/bin/sh\necho \"global-llum $*\" >> %q\n", callLog)
			Expect(os.WriteFile(filepath.Join(globalBin, "llum"), []byte(script), 0755)).To(Succeed())

			_, err := execute("install")
			Expect(err).NotTo(HaveOccurred())

			Expect(calls()).To(Equal([]string{"global-llum package AdminLTE"}))
		})

		It("accepts unknown flags and extra arguments", func() {
			_, err := execute("install", "--verbose", "extra", "args")
			Expect(err).NotTo(HaveOccurred())

			Expect(calls()).To(Equal([]string{"llum package AdminLTE app=no"}))
		})

		It("propagates the exit status of llum", func() {
			setenv("FAKE_LLUM_EXIT", "4")

			_, err := execute("install")
			Expect(err).To(HaveOccurred())
			Expect(errors.ExitCode(err)).To(Equal(4))
		})

		It("exits 127 when llum cannot be found", func() {
			Expect(os.Remove(filepath.Join(binDir, "llum"))).To(Succeed())
			setenv("PATH", binDir)

			_, err := execute("install")
			Expect(err).To(HaveOccurred())
			Expect(errors.ExitCode(err)).To(Equal(errors.ExitNotFound))

			var notFound *errors.ToolNotFoundError
			Expect(stderrors.As(err, &notFound)).To(BeTrue())
			Expect(notFound.Base.Hint).To(ContainSubstring("--no-llum"))
		})
	})

	Context("with --no-llum", func() {
		It("requires, copies the stub, then publishes", func() {
			output, err := execute("install", "--no-llum", "--dev")
			Expect(err).NotTo(HaveOccurred())

			Expect(calls()).To(Equal([]string{
				"composer require acacha/admin-lte-template-laravel:dev-master app=no",
				"php artisan adminlte-laravel:publish app=yes",
			}))

			want, err := stub.FS.ReadFile(stub.AppConfig)
			Expect(err).NotTo(HaveOccurred())
			got, err := os.ReadFile(filepath.Join(project, "config", "app.php"))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))

			Expect(output).To(ContainSubstring("Running composer require acacha/admin-lte-template-laravel:dev-master"))
			Expect(output).To(ContainSubstring("composer output"))
			Expect(output).To(ContainSubstring("Copying file"))
		})

		It("uses vendor:publish when asked", func() {
			_, err := execute("install", "--no-llum", "--use-vendor-publish", "--dontforce")
			Expect(err).NotTo(HaveOccurred())

			Expect(calls()).To(Equal([]string{
				"composer require acacha/admin-lte-template-laravel app=no",
				"php artisan vendor:publish --tag=adminlte --force app=yes",
			}))
		})

		It("runs a project composer.phar through php", func() {
			Expect(os.WriteFile(filepath.Join(project, "composer.phar"), []byte("phar"), 0644)).To(Succeed())

			_, err := execute("install", "--no-llum")
			Expect(err).NotTo(HaveOccurred())

			Expect(calls()).To(Equal([]string{
				"php composer.phar require acacha/admin-lte-template-laravel app=no",
				"php artisan adminlte-laravel:publish app=yes",
			}))
		})

		It("stops after a failed require and keeps its log", func() {
			setenv("FAKE_COMPOSER_EXIT", "2")

			_, err := execute("install", "--no-llum")
			Expect(err).To(HaveOccurred())
			Expect(errors.ExitCode(err)).To(Equal(2))
			Expect(calls()).To(HaveLen(1))
			Expect(filepath.Join(project, "config", "app.php")).NotTo(BeAnExistingFile())

			var procErr *errors.ProcessError
			Expect(stderrors.As(err, &procErr)).To(BeTrue())
			logFile, ok := procErr.Base.Details["Log"].(string)
			Expect(ok).To(BeTrue())
			Expect(logFile).To(HavePrefix(filepath.Join(home, ".cache", "adminlte-laravel", "logs")))

			data, err := os.ReadFile(logFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("composer output"))
		})

		It("fails with a copy error when the config directory is missing", func() {
			Expect(os.Remove(filepath.Join(project, "config"))).To(Succeed())

			_, err := execute("install", "--no-llum")
			Expect(err).To(HaveOccurred())
			Expect(errors.ExitCode(err)).To(Equal(errors.ExitFailure))

			var copyErr *errors.CopyError
			Expect(stderrors.As(err, &copyErr)).To(BeTrue())
			Expect(calls()).To(HaveLen(1))
		})

		It("reads the package constraint from the config file", func() {
			cfgFile := filepath.Join(home, "custom.cue")
			Expect(os.WriteFile(cfgFile, []byte(`package adminlte

config: constraint: "^4.0"
`), 0644)).To(Succeed())

			_, err := execute("--config", cfgFile, "install", "--no-llum")
			Expect(err).NotTo(HaveOccurred())

			Expect(calls()[0]).To(Equal("composer require acacha/admin-lte-template-laravel:^4.0 app=no"))
		})
	})
})

var _ = Describe("config", func() {
	BeforeEach(func() {
		setenv("HOME", GinkgoT().TempDir())
		resetFlags()
	})

	It("prints the defaults as CUE", func() {
		output, err := execute("config")
		Expect(err).NotTo(HaveOccurred())

		Expect(output).To(HavePrefix("package adminlte"))
		Expect(output).To(ContainSubstring("composerPackage:"))
		Expect(output).To(ContainSubstring(`"acacha/admin-lte-template-laravel"`))
		Expect(output).To(ContainSubstring("publishTag:"))
	})

	It("reports invalid config files", func() {
		cfgFile := filepath.Join(GinkgoT().TempDir(), "config.cue")
		Expect(os.WriteFile(cfgFile, []byte("package adminlte\n\nconfig: constraint: \"not a version\"\n"), 0644)).To(Succeed())

		_, err := execute("--config", cfgFile, "config")
		Expect(err).To(HaveOccurred())

		var valErr *errors.ValidationError
		Expect(stderrors.As(err, &valErr)).To(BeTrue())
		Expect(valErr.Field).To(Equal("constraint"))
	})
})

var _ = Describe("version", func() {
	BeforeEach(resetFlags)

	It("prints text", func() {
		output, err := execute("version")
		Expect(err).NotTo(HaveOccurred())
		Expect(output).To(ContainSubstring("adminlte-laravel version dev"))
	})

	It("prints json", func() {
		output, err := execute("version", "-o", "json")
		Expect(err).NotTo(HaveOccurred())
		Expect(output).To(ContainSubstring(`"version": "dev"`))
	})
})

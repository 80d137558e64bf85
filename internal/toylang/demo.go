package toylang

// DemoSource is the sample program parsed when no input file is given
const DemoSource = `

        const x = 100
        const y = 200

        struct Point {
            int x;
            int y;
        }

        struct Line {
            Point a;
            Point b;

            function toString() { }
            function interesect(Line other) { }
        }

        struct Triangle {
            Point a;
            Point b;
            Point c;
        }

        function main (int a, int b, int c) {
            if a * b * c * d + 5*5 == 1000 * 20 {

            }
        }
    `
